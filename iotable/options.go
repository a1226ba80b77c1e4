// SPDX-License-Identifier: MIT

package iotable

import "strings"

// Default label layout: "CHN_A01" or fixed-width "CHNA01".
const (
	DefaultSeparator    = "_"
	DefaultCountryWidth = 3
)

// LabelFormat describes how a compound label splits into a Key.
// When Separator occurs in the label the split is at its first occurrence,
// otherwise the first CountryWidth bytes are the country.
type LabelFormat struct {
	Separator    string
	CountryWidth int
}

// Options for Parse.
type Options struct {
	Labels LabelFormat
}

// Option mutates Options.
type Option func(*Options)

// WithLabelFormat overrides the label split rule.
// Panics when width is not positive.
func WithLabelFormat(separator string, width int) Option {
	if width <= 0 {
		panic("iotable: WithLabelFormat: country width must be > 0")
	}

	return func(o *Options) {
		o.Labels = LabelFormat{Separator: separator, CountryWidth: width}
	}
}

func gatherOptions(opts ...Option) Options {
	o := Options{Labels: LabelFormat{Separator: DefaultSeparator, CountryWidth: DefaultCountryWidth}}
	for _, opt := range opts {
		opt(&o)
	}

	return o
}

// Split applies the format to one label.
func (f LabelFormat) Split(label string) Key {
	if f.Separator != "" {
		if country, code, ok := strings.Cut(label, f.Separator); ok {
			return Key{Country: country, Code: code}
		}
	}
	if len(label) <= f.CountryWidth {
		return Key{Country: label}
	}

	return Key{Country: label[:f.CountryWidth], Code: label[f.CountryWidth:]}
}
