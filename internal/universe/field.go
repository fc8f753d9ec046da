package universe

// Field is an ambient region such as a nebula or ion storm. Fields may
// drift freely or sit inside a system.
type Field struct {
	base
	fieldType string
}

func NewField(name, fieldType string, size float64) *Field {
	f := &Field{base: newBase(name), fieldType: fieldType}
	f.addMeter(MeterSize).SetCurrent(size)
	f.addMeter(MeterSpeed)
	f.addMeter(MeterStealth)
	return f
}

func (f *Field) Kind() Kind { return KindField }

func (f *Field) FieldType() string { return f.fieldType }

func (f *Field) Size() float64 { return f.Meter(MeterSize).Current() }
