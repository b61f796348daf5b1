// Package models holds the data types shared across the client packages.
package models

// User is a ZenLoop account. Accounts registered on this device keep their
// password in the local credential store; the password field is stripped
// before a user is handed out as the session user.
type User struct {
	ID        int    `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Password  string `json:"password,omitempty"`
	Image     string `json:"image,omitempty"`
}

// WithoutPassword returns a copy of the user with the password cleared.
func (u User) WithoutPassword() User {
	u.Password = ""
	return u
}

// FullName returns "First Last", or the username when both are empty.
func (u User) FullName() string {
	switch {
	case u.FirstName == "" && u.LastName == "":
		return u.Username
	case u.LastName == "":
		return u.FirstName
	case u.FirstName == "":
		return u.LastName
	default:
		return u.FirstName + " " + u.LastName
	}
}

// Exercise is a catalog entry. Exercises are immutable: they are fetched
// from the remote catalog (or the built-in fallback) and only ever copied
// into the favourites set. Name is the identity key.
type Exercise struct {
	Name         string `json:"name"`
	Type         string `json:"type"`
	Muscle       string `json:"muscle"`
	Equipment    string `json:"equipment"`
	Difficulty   string `json:"difficulty"`
	Instructions string `json:"instructions"`
}

// Difficulty levels accepted by the catalog.
const (
	DifficultyBeginner     = "beginner"
	DifficultyIntermediate = "intermediate"
	DifficultyExpert       = "expert"
)

// MuscleGroups lists the muscle filters the catalog understands.
var MuscleGroups = []string{
	"abdominals",
	"abductors",
	"adductors",
	"biceps",
	"calves",
	"chest",
	"forearms",
	"glutes",
	"hamstrings",
	"lats",
	"lower_back",
	"middle_back",
	"neck",
	"quadriceps",
	"traps",
	"triceps",
}

// ExerciseTypes lists the exercise type values the catalog returns.
var ExerciseTypes = []string{
	"cardio",
	"olympic_weightlifting",
	"plyometrics",
	"powerlifting",
	"strength",
	"stretching",
	"strongman",
}
