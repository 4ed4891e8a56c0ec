package openapi

// Clone returns a deep copy of the schema. Child schemas, property maps
// and bound pointers are copied, so mutating the clone never touches
// the receiver. Opaque values (Enum entries, Example, Default) are
// copied by reference since the engine treats them as read-only.
func (s *Schema) Clone() *Schema {
	if s == nil {
		return nil
	}

	c := *s

	if s.Properties != nil {
		c.Properties = make(map[string]*Schema, len(s.Properties))
		for name, prop := range s.Properties {
			c.Properties[name] = prop.Clone()
		}
	}
	c.Items = s.Items.Clone()
	c.AdditionalProperties = s.AdditionalProperties.Clone()

	c.Required = cloneSlice(s.Required)
	c.Enum = cloneSlice(s.Enum)
	c.AllOf = cloneSchemas(s.AllOf)
	c.AnyOf = cloneSchemas(s.AnyOf)
	c.OneOf = cloneSchemas(s.OneOf)

	c.MinLength = clonePtr(s.MinLength)
	c.MaxLength = clonePtr(s.MaxLength)
	c.Minimum = clonePtr(s.Minimum)
	c.Maximum = clonePtr(s.Maximum)
	c.MinItems = clonePtr(s.MinItems)
	c.MaxItems = clonePtr(s.MaxItems)
	c.MinProperties = clonePtr(s.MinProperties)
	c.MaxProperties = clonePtr(s.MaxProperties)
	c.MultipleOf = clonePtr(s.MultipleOf)

	return &c
}

// CloneAttributes copies every descriptive attribute of the schema
// (format, enum, bounds, nullability, required names and the rest) into
// a fresh node, leaving out the structural parts: reference, properties,
// items, composition branches. Materialization uses it to seed each
// copy before recursing into children.
func (s *Schema) CloneAttributes() *Schema {
	c := *s

	c.Ref = ""
	c.Properties = nil
	c.Items = nil
	c.AdditionalProperties = nil
	c.AllOf = nil
	c.AnyOf = nil
	c.OneOf = nil

	c.Required = cloneSlice(s.Required)
	c.Enum = cloneSlice(s.Enum)

	c.MinLength = clonePtr(s.MinLength)
	c.MaxLength = clonePtr(s.MaxLength)
	c.Minimum = clonePtr(s.Minimum)
	c.Maximum = clonePtr(s.Maximum)
	c.MinItems = clonePtr(s.MinItems)
	c.MaxItems = clonePtr(s.MaxItems)
	c.MinProperties = clonePtr(s.MinProperties)
	c.MaxProperties = clonePtr(s.MaxProperties)
	c.MultipleOf = clonePtr(s.MultipleOf)

	return &c
}

func cloneSchemas(in []*Schema) []*Schema {
	if in == nil {
		return nil
	}
	out := make([]*Schema, len(in))
	for i, s := range in {
		out[i] = s.Clone()
	}
	return out
}

func cloneSlice[T any](in []T) []T {
	if in == nil {
		return nil
	}
	out := make([]T, len(in))
	copy(out, in)
	return out
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
