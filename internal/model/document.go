package model

// Document is the field-mapping form of a record, as persisted in session storage
// and exchanged with document-style collaborators.
type Document map[string]any

// Document converts the profile to its storage form. Optional strings are always present.
func (p Profile) Document() Document {
	links := make([]string, len(p.ContactLinks))
	copy(links, p.ContactLinks)
	return Document{
		"id":                  p.ID,
		"name":                p.Name,
		"username":            p.Username,
		"passwordDigest":      p.PasswordDigest,
		"course":              p.Course,
		"graduationYear":      p.GraduationYear,
		"personalDescription": p.PersonalDescription,
		"careerDescription":   p.CareerDescription,
		"contactLinks":        links,
		"profileImage":        p.ProfileImage,
		"faceImage":           p.FaceImage,
		"facePoints":          p.FacePoints,
		"verified":            p.Verified,
		"termsAccepted":       p.TermsAccepted,
	}
}

// ProfileFromDocument builds a profile from its storage form. Absent fields become zero values.
func ProfileFromDocument(doc Document) Profile {
	return Profile{
		ID:                  doc.str("id"),
		Name:                doc.str("name"),
		Username:            doc.str("username"),
		PasswordDigest:      doc.str("passwordDigest"),
		Course:              doc.str("course"),
		GraduationYear:      doc.str("graduationYear"),
		PersonalDescription: doc.str("personalDescription"),
		CareerDescription:   doc.str("careerDescription"),
		ContactLinks:        doc.strs("contactLinks"),
		ProfileImage:        doc.str("profileImage"),
		FaceImage:           doc.str("faceImage"),
		FacePoints:          doc.str("facePoints"),
		Verified:            doc.boolean("verified"),
		TermsAccepted:       doc.boolean("termsAccepted"),
	}
}

// Document converts the admin to its storage form.
func (a Admin) Document() Document {
	return Document{
		"id":             a.ID,
		"name":           a.Name,
		"username":       a.Username,
		"passwordDigest": a.PasswordDigest,
		"role":           a.Role,
	}
}

// AdminFromDocument builds an admin from its storage form.
func AdminFromDocument(doc Document) Admin {
	return Admin{
		ID:             doc.str("id"),
		Name:           doc.str("name"),
		Username:       doc.str("username"),
		PasswordDigest: doc.str("passwordDigest"),
		Role:           doc.str("role"),
	}
}

func (d Document) str(key string) string {
	s, _ := d[key].(string)
	return s
}

func (d Document) boolean(key string) bool {
	b, _ := d[key].(bool)
	return b
}

// strs accepts both []string and the []any produced by encoding/json.
func (d Document) strs(key string) []string {
	switch v := d[key].(type) {
	case []string:
		out := make([]string, len(v))
		copy(out, v)
		return out
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return []string{}
	}
}
