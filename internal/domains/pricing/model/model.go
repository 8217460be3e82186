package model

// MealPlan is the board option chosen for a stay.
type MealPlan string

const (
	MealPlanNone      MealPlan = "none"
	MealPlanBreakfast MealPlan = "breakfast"
	MealPlanAll       MealPlan = "all"
)

// Per adult, per night. Children eat free.
const (
	BreakfastRate = 200
	AllMealsRate  = 500
)

// TaxRate is the flat consumption tax applied to the subtotal.
const TaxRate = 0.05

const HoursPerNight = 24

// Valid reports whether p is one of the known meal plans.
func (p MealPlan) Valid() bool {
	switch p {
	case MealPlanNone, MealPlanBreakfast, MealPlanAll:
		return true
	default:
		return false
	}
}

// Rate returns the per adult per night meal charge.
func (p MealPlan) Rate() float64 {
	switch p {
	case MealPlanBreakfast:
		return BreakfastRate
	case MealPlanAll:
		return AllMealsRate
	default:
		return 0
	}
}

// OrDefault maps the empty plan to none.
func (p MealPlan) OrDefault() MealPlan {
	if p == "" {
		return MealPlanNone
	}

	return p
}

// Quote is the full price breakdown of a stay. Amounts are whole currency
// units and are never rounded here.
type Quote struct {
	Nights   int
	RoomCost float64
	MealCost float64
	Subtotal float64
	Tax      float64
	Total    float64
}
