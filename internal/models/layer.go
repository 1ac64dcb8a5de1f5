package models

// GeomType is the geometry kind of a layer.
type GeomType string

// Geometry type constants
const (
	GeomTypePoint      GeomType = "Point"
	GeomTypeLinestring GeomType = "Linestring"
	GeomTypePolygon    GeomType = "Polygon"
)

// Valid reports whether g is one of the supported geometry types.
func (g GeomType) Valid() bool {
	switch g {
	case GeomTypePoint, GeomTypeLinestring, GeomTypePolygon:
		return true
	}
	return false
}

// Layer is a geometric collection owned by a protocol.
// Hierarchy is the ordered path of grouping labels used by the layer picker.
type Layer struct {
	ID          string
	Version     string
	GeomType    GeomType
	Status      string
	Label       string
	Symbology   string
	Description string
	Hierarchy   []string
	Fields      []Field
	MenuItems   []string
}

// Key returns the layer identity as id::version.
func (l Layer) Key() string {
	return joinKey(l.ID, l.Version)
}

// IsDeprecated reports whether the layer is deprecated.
func (l Layer) IsDeprecated() bool {
	return IsDeprecated(l.Status)
}

// Field returns the first field with the given id.
func (l Layer) Field(id string) (Field, bool) {
	for _, f := range l.Fields {
		if f.ID == id {
			return f, true
		}
	}
	return Field{}, false
}
