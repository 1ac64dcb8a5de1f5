package models

// FieldType is the data type of a layer field.
type FieldType string

// Field type constants
const (
	FieldTypeList       FieldType = "list"
	FieldTypeText       FieldType = "text"
	FieldTypeInteger    FieldType = "integer"
	FieldTypeFloat      FieldType = "float"
	FieldTypeAttachment FieldType = "attachment"
)

// fieldTags maps protocol XML element tags to field types.
var fieldTags = map[string]FieldType{
	"ListField":       FieldTypeList,
	"TextField":       FieldTypeText,
	"IntegerField":    FieldTypeInteger,
	"FloatField":      FieldTypeFloat,
	"AttachmentField": FieldTypeAttachment,
}

// FieldTypeForTag returns the field type declared by an XML element tag.
func FieldTypeForTag(tag string) (FieldType, bool) {
	t, ok := fieldTags[tag]
	return t, ok
}

// Tag returns the XML element tag that declares fields of this type.
func (t FieldType) Tag() string {
	for tag, ft := range fieldTags {
		if ft == t {
			return tag
		}
	}
	return ""
}

// Numeric reports whether the type holds numbers.
func (t FieldType) Numeric() bool {
	return t == FieldTypeInteger || t == FieldTypeFloat
}

// Field is a typed attribute attached to a layer.
//
// The payload depends on Type: list fields carry Values, integer fields may carry
// IntSlider and float fields may carry FloatSlider. References to other fields
// (Visibility, DerivedValues) are field ids within the same layer.
type Field struct {
	ID                  string
	Version             string
	Type                FieldType
	Status              string
	Label               string
	Description         string
	Required            bool
	Values              []string
	AllowCustomValues   bool
	AllowMultipleValues bool
	DefaultValue        string
	Visibility          *Visibility
	DerivedValues       []DerivedValue
	IntSlider           *Slider[int]
	FloatSlider         *Slider[float64]

	// Attributes lists the XML attributes declared on the field element,
	// in document order.
	Attributes []Attribute
}

// Attribute is a name/value pair declared on a definition element.
type Attribute struct {
	Name  string
	Value string
}

// AttributeNames returns the declared attribute names in document order.
func (f Field) AttributeNames() []string {
	names := make([]string, len(f.Attributes))
	for i, a := range f.Attributes {
		names[i] = a.Name
	}
	return names
}

// Key returns the field identity as id::version.
func (f Field) Key() string {
	return joinKey(f.ID, f.Version)
}

// IsDeprecated reports whether the field is deprecated.
func (f Field) IsDeprecated() bool {
	return IsDeprecated(f.Status)
}

// Visibility shows a field only when the controller field holds one of Values.
type Visibility struct {
	FieldIDRef string
	Values     []string
}

// DerivedValue sets a field to Output when every input matches.
type DerivedValue struct {
	Output string
	Inputs []InputValue
}

// InputValue is one (field, value) condition of a derived value rule.
type InputValue struct {
	FieldIDRef string
	Value      string
}

// Slider bounds a numeric field. T matches the field type.
type Slider[T int | float64] struct {
	Min  T
	Max  T
	Step T
}
