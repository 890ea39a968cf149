package catalog

// FixedRoundMinutes is the duration of every round of a fixed-time category.
const FixedRoundMinutes = 75

var defaultCategories = []Category{
	{Name: "3x3", RegistrationPercentage: 97.49, Format: FormatAo5, Attempts: 5, ScrambleSeconds: 30, Small: true, Popular: true},
	{Name: "2x2", RegistrationPercentage: 83.92, Format: FormatAo5, Attempts: 5, ScrambleSeconds: 20, Small: true, Popular: true},
	{Name: "4x4", RegistrationPercentage: 69.17, Format: FormatAo5, Attempts: 5, ScrambleSeconds: 40, Popular: true},
	{Name: "5x5", RegistrationPercentage: 59.59, Format: FormatAo5, Attempts: 5, ScrambleSeconds: 50},
	{Name: "6x6", RegistrationPercentage: 44.54, Format: FormatMo3, Attempts: 3, ScrambleSeconds: 50},
	{Name: "7x7", RegistrationPercentage: 44.98, Format: FormatMo3, Attempts: 3, ScrambleSeconds: 50},
	{Name: "3BLD", RegistrationPercentage: 33.15, Format: FormatMo3, Attempts: 3, ScrambleSeconds: 360},
	{Name: "3OH", RegistrationPercentage: 69.03, Format: FormatAo5, Attempts: 5, ScrambleSeconds: 30, Small: true, Popular: true},
	{Name: "FMC", RegistrationPercentage: 71.45, Format: FormatMo3, Attempts: 3, ScrambleSeconds: 0, SingleGroup: true, FixedTime: true},
	{Name: "Megaminx", RegistrationPercentage: 58.59, Format: FormatAo5, Attempts: 5, ScrambleSeconds: 60},
	{Name: "Pyraminx", RegistrationPercentage: 72.37, Format: FormatAo5, Attempts: 5, ScrambleSeconds: 30, Small: true, Popular: true},
	{Name: "Skewb", RegistrationPercentage: 60.80, Format: FormatAo5, Attempts: 5, ScrambleSeconds: 20, Small: true, Popular: true},
	{Name: "Square-1", RegistrationPercentage: 39.63, Format: FormatAo5, Attempts: 5, ScrambleSeconds: 30},
	{Name: "Clock", RegistrationPercentage: 53.57, Format: FormatAo5, Attempts: 5, ScrambleSeconds: 40},
	{Name: "4BLD", RegistrationPercentage: 19.94, Format: FormatMo3, Attempts: 3, ScrambleSeconds: 0, SingleGroup: true, FixedTime: true},
	{Name: "5BLD", RegistrationPercentage: 13.00, Format: FormatMo3, Attempts: 3, ScrambleSeconds: 0, SingleGroup: true, FixedTime: true},
	{Name: "MBLD", RegistrationPercentage: 10.00, Format: FormatSingle, Attempts: 1, ScrambleSeconds: 0, SingleGroup: true, FixedTime: true},
}

// Default returns the built-in speedcubing catalog.
func Default() *Catalog {
	c, err := New(defaultCategories)
	if err != nil {
		panic("catalog: invalid built-in data: " + err.Error())
	}
	return c
}
