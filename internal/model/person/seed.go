package person

// Seed provides demo records for local development.
func Seed() []Fields {
	return []Fields{
		{
			FirstName:         "Jane",
			LastName:          "Doe",
			PersonalStatement: "Product designer who likes turning messy workflows into simple forms.",
		},
		{
			FirstName:         "John",
			LastName:          "Smith",
			PersonalStatement: "Backend engineer, happiest when an API has boring, predictable pagination.",
		},
		{
			FirstName:         "Ann",
			LastName:          "Lee",
			PersonalStatement: "Volunteer coordinator and amateur astronomer.",
		},
	}
}

// Load inserts every entry of fields into store in order.
func Load(store Store, fields []Fields) []Person {
	out := make([]Person, 0, len(fields))
	for _, f := range fields {
		out = append(out, store.Create(f))
	}
	return out
}
