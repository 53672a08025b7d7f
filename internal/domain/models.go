package domain

// User is a registered account. JSON names match the documents written by
// the mobile client so existing stores stay readable.
type User struct {
	Username   string `json:"username"`
	Password   string `json:"password"`
	UserGender string `json:"userGender"`
	UserAge    string `json:"userAge"`
	UserHeight string `json:"userHeight"`
	UserWeight string `json:"userWeight"`
	UserDiet   string `json:"userDiet"`
}

// UserUpdate carries a partial profile edit; nil fields keep their stored value.
type UserUpdate struct {
	Password   *string
	UserGender *string
	UserAge    *string
	UserHeight *string
	UserWeight *string
	UserDiet   *string
}

// Apply returns u with every set field of upd copied over it
func (upd UserUpdate) Apply(u User) User {
	if upd.Password != nil {
		u.Password = *upd.Password
	}
	if upd.UserGender != nil {
		u.UserGender = *upd.UserGender
	}
	if upd.UserAge != nil {
		u.UserAge = *upd.UserAge
	}
	if upd.UserHeight != nil {
		u.UserHeight = *upd.UserHeight
	}
	if upd.UserWeight != nil {
		u.UserWeight = *upd.UserWeight
	}
	if upd.UserDiet != nil {
		u.UserDiet = *upd.UserDiet
	}
	return u
}

// Meal is one logged meal. ID and Seq are empty on entries migrated from the
// legacy whole-array layout.
type Meal struct {
	ID          string `json:"id,omitempty"`
	Seq         int64  `json:"seq,omitempty"`
	UserMeal    string `json:"userMeal"`
	StringDate  string `json:"stringDate"`
	Category    string `json:"category"`
	Calories    string `json:"calories"`
	MealDetails string `json:"mealDetails"`
	Image       string `json:"image,omitempty"`
}

// Training is one logged workout.
type Training struct {
	ID            string `json:"id,omitempty"`
	Seq           int64  `json:"seq,omitempty"`
	UserTraining  string `json:"userTraining"`
	StringDate    string `json:"stringDate"`
	Sport         string `json:"sport"`
	Hours         int    `json:"hours"`
	Minutes       int    `json:"minutes"`
	BurntCalories string `json:"burntCalories"`
	Description   string `json:"description"`
	Image         string `json:"image,omitempty"`
}

// Meal categories
const (
	CategoryBreakfast = "Breakfast"
	CategoryLunch     = "Lunch"
	CategoryDinner    = "Dinner"
	CategorySnack     = "Snack"
)

// Categories lists meal categories in display order
var Categories = []string{CategoryBreakfast, CategoryLunch, CategoryDinner, CategorySnack}

// Sports lists the activities a training can be logged for
var Sports = []string{
	"Running",
	"Cycling",
	"Swimming",
	"Walking",
	"Gym",
	"Yoga",
	"Football",
	"Basketball",
	"Tennis",
	"Hiking",
	"Other",
}

var (
	Genders = []string{"F", "M", "Other"}
	Diets   = []string{"Vegetarian", "Vegan", "Omnivorous", "Other"}
)
