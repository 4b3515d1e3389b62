// seehuhn.de/go/vectorize - convert raster images to vector graphics
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package vectorize

import (
	"errors"
	"fmt"
)

// These errors are used as panic values when a [Session] is used
// incorrectly.
var (
	ErrNotInitialized     = errors.New("vectorize: session not initialized")
	ErrAlreadyInitialized = errors.New("vectorize: session already initialized")
	ErrClosed             = errors.New("vectorize: session closed")
)

// ConfigError reports an invalid configuration value.
type ConfigError struct {
	Field string
	Value string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("vectorize: invalid %s %q", e.Field, e.Value)
}
