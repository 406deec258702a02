package cli

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/nutritrack/internal/client/models"
	"github.com/dmitrijs2005/nutritrack/internal/client/services"
	"github.com/dmitrijs2005/nutritrack/internal/shared"
)

// getSimpleText, getPassword, getNumber and getChoice are indirections used
// to facilitate testing. They point to interactive input helpers and can be
// swapped in tests.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
	getNumber     = GetNumber
	getChoice     = GetChoice
)

var (
	genderOptions    = []string{models.GenderMale.String(), models.GenderFemale.String(), models.GenderOther.String()}
	activityOptions  = []string{models.ActivitySedentary.String(), models.ActivityLight.String(), models.ActivityModerate.String(), models.ActivityHigh.String()}
	objectiveOptions = []string{models.ObjectiveLoseFat.String(), models.ObjectiveRecompose.String(), models.ObjectiveGainMuscle.String()}
)

// personalData is the part of the registration form shared with the
// profile editor.
type personalData struct {
	fullName  string
	birthDate string
	height    float64
	weight    float64
	gender    models.Gender
	activity  models.ActivityLevel
	objective models.Objective
}

func (a *App) readPersonalData() (personalData, error) {
	var (
		p   personalData
		n   int
		err error
	)
	if p.fullName, err = getSimpleText(a.reader, "Full name", a.out); err != nil {
		return p, err
	}
	if p.birthDate, err = getSimpleText(a.reader, "Birth date (YYYY-MM-DD)", a.out); err != nil {
		return p, err
	}
	if p.height, err = getNumber(a.reader, "Height (cm)", a.out); err != nil {
		return p, err
	}
	if p.weight, err = getNumber(a.reader, "Weight (kg)", a.out); err != nil {
		return p, err
	}
	if n, err = getChoice(a.reader, "Gender", genderOptions, a.out); err != nil {
		return p, err
	}
	p.gender = models.Gender(n)
	if n, err = getChoice(a.reader, "Activity level", activityOptions, a.out); err != nil {
		return p, err
	}
	p.activity = models.ActivityLevel(n)
	if n, err = getChoice(a.reader, "Objective", objectiveOptions, a.out); err != nil {
		return p, err
	}
	p.objective = models.Objective(n)
	return p, nil
}

// Register prompts for the registration form and creates the account.
// The form is validated locally first; nothing is sent when a field is
// invalid.
func (a *App) Register(ctx context.Context) error {
	p, err := a.readPersonalData()
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer shared.WipeByteArray(password)

	ctx, cancel := a.requestContext(ctx)
	defer cancel()

	err = a.auth.Register(ctx, models.RegisterUser{
		FullName:      p.fullName,
		Email:         email,
		Password:      string(password),
		BirthDate:     p.birthDate,
		HeightCm:      p.height,
		WeightKg:      p.weight,
		Gender:        p.gender,
		ActivityLevel: p.activity,
		Objective:     p.objective,
	})
	if err != nil {
		return err
	}

	a.println("Account created, you can login now.")
	return nil
}

// Login prompts for credentials, saves the issued token and opens the
// session of the user.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer shared.WipeByteArray(password)

	rctx, cancel := a.requestContext(ctx)
	defer cancel()

	if err := a.auth.Login(rctx, models.LoginUser{Email: email, Password: string(password)}); err != nil {
		var fe *services.FormError
		if errors.As(err, &fe) {
			return err
		}
		a.logger.Warn(ctx, "login unsuccessful", "err", err)
		return errors.New("login failed, check your email and password")
	}

	a.closeSession()
	a.openSession(ctx)
	a.println("Login successful")
	a.printTranscript(a.session.Chat.Transcript())
	return nil
}

// Logout forgets the token and drops the session. Local transcripts stay on
// disk for the next login of the same user.
func (a *App) Logout(ctx context.Context) error {
	if err := a.auth.Logout(ctx); err != nil {
		return err
	}
	a.closeSession()
	a.println("Logged out")
	return nil
}

// Profile prints the profile and daily goals.
func (a *App) Profile(ctx context.Context) error {
	rctx, cancel := a.requestContext(ctx)
	defer cancel()

	p, err := a.auth.Profile(rctx)
	if err != nil {
		return a.check(ctx, err)
	}

	a.printf("Name:      %s\n", p.FullName)
	if p.Email != "" {
		a.printf("Email:     %s\n", p.Email)
	}
	if p.BirthDate != "" {
		a.printf("Born:      %s\n", p.BirthDate)
	}
	a.printf("Height:    %.0f cm\n", p.HeightCm)
	a.printf("Weight:    %.1f kg\n", p.WeightKg)
	a.printf("Gender:    %s\n", models.Gender(p.Gender))
	a.printf("Activity:  %s\n", models.ActivityLevel(p.ActivityLevel))
	a.printf("Objective: %s\n", models.ObjectiveLabel(p.Objective))
	a.printf("Daily goals: %.0f kcal, protein %.0fg, carbs %.0fg, fat %.0fg\n",
		p.CalorieGoal, p.ProteinGoal, p.CarbsGoal, p.FatGoal)
	return nil
}

// EditProfile prompts for the editable profile fields and saves them.
func (a *App) EditProfile(ctx context.Context) error {
	p, err := a.readPersonalData()
	if err != nil {
		return err
	}

	rctx, cancel := a.requestContext(ctx)
	defer cancel()

	err = a.auth.UpdateProfile(rctx, models.ProfileUpdate{
		FullName:      p.fullName,
		BirthDate:     p.birthDate,
		HeightCm:      p.height,
		WeightKg:      p.weight,
		Gender:        p.gender,
		ActivityLevel: p.activity,
		Objective:     p.objective,
	})
	if err != nil {
		return a.check(ctx, err)
	}
	a.println("Profile updated")
	return nil
}
