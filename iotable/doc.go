// SPDX-License-Identifier: MIT

// Package iotable labels a raw multi-regional input-output table.
//
// A table for C countries, I industries, U final-use categories and K
// value-added categories is laid out as
//
//	          | C*I sectors | C*U final use | TOT_OUT
//	----------+-------------+---------------+--------
//	C*I rows  |      Z      |       F       |  X_c
//	K rows    |  taxes, VA  |               |
//	1 row     |     X_r     |               |
//
// Every label is a compound "country_code" string. Parse splits them into
// Keys and checks that the declared Dims partition the table exactly.
package iotable
