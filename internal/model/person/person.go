package person

// Person is a single record managed by the store.
type Person struct {
	ID                int    `json:"id"`
	FirstName         string `json:"firstName"`
	LastName          string `json:"lastName"`
	PersonalStatement string `json:"personalStatement"`
}

// Fields carries the caller-supplied attributes of a new record.
type Fields struct {
	FirstName         string `json:"firstName"`
	LastName          string `json:"lastName"`
	PersonalStatement string `json:"personalStatement"`
}

// Patch describes a partial update. Nil fields are left untouched.
type Patch struct {
	FirstName         *string `json:"firstName,omitempty"`
	LastName          *string `json:"lastName,omitempty"`
	PersonalStatement *string `json:"personalStatement,omitempty"`
}

// Empty reports whether the patch carries no field at all.
func (p Patch) Empty() bool {
	return p.FirstName == nil && p.LastName == nil && p.PersonalStatement == nil
}

func (p Person) apply(patch Patch) Person {
	if patch.FirstName != nil {
		p.FirstName = *patch.FirstName
	}
	if patch.LastName != nil {
		p.LastName = *patch.LastName
	}
	if patch.PersonalStatement != nil {
		p.PersonalStatement = *patch.PersonalStatement
	}
	return p
}
