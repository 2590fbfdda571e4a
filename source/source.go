// Package source selects the JSON driver used by croissant.Source
// constructors. It lives outside the root package to avoid an import cycle
// with the driver implementations.
package source

import (
	"fmt"

	croissant "github.com/reoring/croissant"
	drvgojson "github.com/reoring/croissant/source/gojson"
	jsonsrc "github.com/reoring/croissant/source/json"
)

// Driver names accepted by Use.
const (
	GoJSON       = "go-json"
	EncodingJSON = "encoding/json"
)

// init in a separate package to avoid import cycle in root. This sets go-json as default driver.
func init() { croissant.SetJSONDriver(drvgojson.Driver()) }

// Use switches the process-wide JSON driver by name. An empty name keeps go-json.
func Use(name string) error {
	switch name {
	case "", GoJSON:
		croissant.SetJSONDriver(drvgojson.Driver())
	case EncodingJSON:
		croissant.UseDefaultJSONDriver()
	default:
		return fmt.Errorf("unknown JSON driver %q (want %s or %s)", name, GoJSON, EncodingJSON)
	}
	return nil
}

// StdBytes returns an encoding/json backed Source regardless of the global driver.
func StdBytes(b []byte) croissant.Source {
	return croissant.SourceFromEngine(jsonsrc.NewBytes(b), croissant.NumberJSONNumber)
}
