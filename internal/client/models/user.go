package models

// Gender, ActivityLevel and Objective use the backend's numeric codes.
type (
	Gender        int
	ActivityLevel int
	Objective     int
)

const (
	GenderMale   Gender = 1
	GenderFemale Gender = 2
	GenderOther  Gender = 3
)

const (
	ActivitySedentary ActivityLevel = 1
	ActivityLight     ActivityLevel = 2
	ActivityModerate  ActivityLevel = 3
	ActivityHigh      ActivityLevel = 4
)

const (
	ObjectiveLoseFat    Objective = 1
	ObjectiveRecompose  Objective = 2
	ObjectiveGainMuscle Objective = 3
)

// RegisterUser is the registration form. Validation tags are enforced
// locally before anything is sent.
type RegisterUser struct {
	FullName      string        `json:"nomeCompleto" validate:"required,min=3"`
	Email         string        `json:"email" validate:"required,email"`
	Password      string        `json:"senha" validate:"required,min=8"`
	BirthDate     string        `json:"dataNascimento" validate:"required,datetime=2006-01-02"`
	HeightCm      float64       `json:"alturaEmCm" validate:"required,min=50,max=300"`
	WeightKg      float64       `json:"pesoEmKg" validate:"required,min=20,max=500"`
	Gender        Gender        `json:"genero" validate:"required,oneof=1 2 3"`
	ActivityLevel ActivityLevel `json:"nivelDeAtividade" validate:"required,oneof=1 2 3 4"`
	Objective     Objective     `json:"objetivo" validate:"required,oneof=1 2 3"`
}

// LoginUser carries login credentials.
type LoginUser struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"senha" validate:"required"`
}

// Profile is the signed-in user's profile with daily goals. Objective is the
// backend's enum name, e.g. "GanharMassa".
type Profile struct {
	FullName      string  `json:"nomeCompleto"`
	Email         string  `json:"email,omitempty"`
	BirthDate     string  `json:"dataNascimento,omitempty"`
	HeightCm      float64 `json:"alturaEmCm,omitempty"`
	WeightKg      float64 `json:"pesoEmKg,omitempty"`
	Gender        int     `json:"genero,omitempty"`
	ActivityLevel int     `json:"nivelDeAtividade,omitempty"`
	Objective     string  `json:"objetivo"`
	CalorieGoal   float64 `json:"metaCalorias"`
	ProteinGoal   float64 `json:"metaProteinas"`
	CarbsGoal     float64 `json:"metaCarboidratos"`
	FatGoal       float64 `json:"metaGorduras"`
}

// ProfileUpdate holds the editable profile fields.
type ProfileUpdate struct {
	FullName      string        `json:"nomeCompleto" validate:"required"`
	BirthDate     string        `json:"dataNascimento" validate:"required,datetime=2006-01-02"`
	HeightCm      float64       `json:"alturaEmCm" validate:"required,min=50,max=300"`
	WeightKg      float64       `json:"pesoEmKg" validate:"required,min=20,max=500"`
	Gender        Gender        `json:"genero" validate:"required,oneof=1 2 3"`
	ActivityLevel ActivityLevel `json:"nivelDeAtividade" validate:"required,oneof=1 2 3 4"`
	Objective     Objective     `json:"objetivo" validate:"required,oneof=1 2 3"`
}

func (g Gender) String() string {
	switch g {
	case GenderMale:
		return "Male"
	case GenderFemale:
		return "Female"
	case GenderOther:
		return "Other"
	}
	return "Not informed"
}

func (a ActivityLevel) String() string {
	switch a {
	case ActivitySedentary:
		return "Sedentary"
	case ActivityLight:
		return "Light activity"
	case ActivityModerate:
		return "Moderate activity"
	case ActivityHigh:
		return "High activity"
	}
	return "Not informed"
}

func (o Objective) String() string {
	switch o {
	case ObjectiveLoseFat:
		return "Lose fat"
	case ObjectiveRecompose:
		return "Swap fat for muscle"
	case ObjectiveGainMuscle:
		return "Gain muscle"
	}
	return "Not informed"
}

// ObjectiveLabel turns the backend enum name of Profile.Objective into a
// display label.
func ObjectiveLabel(name string) string {
	switch name {
	case "PerderGordura":
		return "Lose fat"
	case "TrocarGordura":
		return "Swap fat for muscle"
	case "GanharMassa":
		return "Gain muscle"
	}
	return "Objective not set"
}
