package models

// Candidate is a person eligible for swiping. Candidates are immutable once loaded.
type Candidate struct {
	ID          string   `dynamodbav:"candidateId" json:"id"`                              // Profile identifier
	Name        string   `dynamodbav:"name" json:"name"`                                   // Display name
	Age         int      `dynamodbav:"age,omitempty" json:"age,omitempty"`                 // Age in years
	Program     string   `dynamodbav:"program,omitempty" json:"program,omitempty"`         // Academic program / major
	Bio         string   `dynamodbav:"bio,omitempty" json:"bio,omitempty"`                 // Free-text biography
	Interests   []string `dynamodbav:"interests,omitempty" json:"interests,omitempty"`     // Ordered interest tags
	Image       string   `dynamodbav:"image,omitempty" json:"image,omitempty"`             // Primary image reference
	ExtraImages []string `dynamodbav:"extraImages,omitempty" json:"extraImages,omitempty"` // Additional image references
}

// Initials returns the avatar initials for the candidate's name.
func (c Candidate) Initials() string {
	return Initials(c.Name)
}

// User is a registered account.
type User struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Email        string   `json:"email"`
	Program      string   `json:"program,omitempty"`
	Age          int      `json:"age,omitempty"`
	Bio          string   `json:"bio,omitempty"`
	Interests    []string `json:"interests,omitempty"`
	PasswordHash string   `json:"-"`
}

// Initials builds avatar initials from the first letter of each name part.
func Initials(name string) string {
	var out []rune
	start := true
	for _, r := range name {
		if r == ' ' {
			start = true
			continue
		}
		if start {
			out = append(out, r)
			start = false
		}
	}
	return string(out)
}
