package exercises

import "github.com/zenloop/zenloop/internal/client/models"

// fallbackCatalog is served when the remote catalog is unreachable. The
// list is fixed; a muscle filter against it may legitimately come back
// empty.
var fallbackCatalog = []models.Exercise{
	{
		Name:         "Push-ups",
		Type:         "strength",
		Muscle:       "chest",
		Equipment:    "body_only",
		Difficulty:   "beginner",
		Instructions: "Start in a plank position with hands shoulder-width apart. Lower your body until chest nearly touches the floor. Push back up to starting position.",
	},
	{
		Name:         "Squats",
		Type:         "strength",
		Muscle:       "quadriceps",
		Equipment:    "body_only",
		Difficulty:   "beginner",
		Instructions: "Stand with feet shoulder-width apart. Lower your body by bending knees and hips. Keep back straight. Return to starting position.",
	},
	{
		Name:         "Plank",
		Type:         "strength",
		Muscle:       "abdominals",
		Equipment:    "body_only",
		Difficulty:   "beginner",
		Instructions: "Hold a push-up position with forearms on the ground. Keep body straight from head to heels. Hold for 30-60 seconds.",
	},
	{
		Name:         "Bicep Curls",
		Type:         "strength",
		Muscle:       "biceps",
		Equipment:    "dumbbells",
		Difficulty:   "beginner",
		Instructions: "Stand with dumbbells in hands, arms fully extended. Curl weights up to shoulders, keeping elbows stationary. Lower back down.",
	},
	{
		Name:         "Lunges",
		Type:         "strength",
		Muscle:       "quadriceps",
		Equipment:    "body_only",
		Difficulty:   "beginner",
		Instructions: "Step forward with one leg, lowering hips until both knees are at 90 degrees. Push back to starting position. Alternate legs.",
	},
	{
		Name:         "Shoulder Press",
		Type:         "strength",
		Muscle:       "shoulders",
		Equipment:    "dumbbells",
		Difficulty:   "intermediate",
		Instructions: "Hold dumbbells at shoulder height. Press weights overhead until arms are fully extended. Lower back to shoulders.",
	},
	{
		Name:         "Deadlifts",
		Type:         "strength",
		Muscle:       "hamstrings",
		Equipment:    "barbell",
		Difficulty:   "intermediate",
		Instructions: "Stand with barbell over feet. Bend at hips and knees to grip bar. Lift by extending hips and knees. Lower bar to ground.",
	},
	{
		Name:         "Tricep Dips",
		Type:         "strength",
		Muscle:       "triceps",
		Equipment:    "body_only",
		Difficulty:   "intermediate",
		Instructions: "Position hands on parallel bars. Lower body by bending elbows until shoulders are below elbows. Push back up.",
	},
	{
		Name:         "Pull-ups",
		Type:         "strength",
		Muscle:       "lats",
		Equipment:    "pull_up_bar",
		Difficulty:   "intermediate",
		Instructions: "Hang from bar with overhand grip. Pull body up until chin is above bar. Lower back down with control.",
	},
	{
		Name:         "Burpees",
		Type:         "cardio",
		Muscle:       "abdominals",
		Equipment:    "body_only",
		Difficulty:   "expert",
		Instructions: "From standing, drop into squat, kick feet back to plank, do push-up, return to squat, jump up. Repeat.",
	},
}
