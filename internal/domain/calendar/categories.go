package calendar

// TaskCategory is display metadata for one of the seven task kinds. Color
// and icon are presentation hints only.
type TaskCategory struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Icon        string `json:"icon"`
	Color       string `json:"color"`
	Description string `json:"description"`
}

const (
	TaskExercise    = "exercise"
	TaskMedicine    = "medicine"
	TaskAppointment = "appointment"
	TaskMeal        = "meal"
	TaskTherapy     = "therapy"
	TaskLab         = "lab"
	TaskOther       = "other"
)

var taskCategories = []TaskCategory{
	{ID: TaskExercise, Title: "Exercise", Icon: "dumbbell", Color: "#4CAF50", Description: "Physical activity or workout"},
	{ID: TaskMedicine, Title: "Medicine", Icon: "pill", Color: "#2196F3", Description: "Medication reminder"},
	{ID: TaskAppointment, Title: "Appointment", Icon: "stethoscope", Color: "#F44336", Description: "Doctor appointment"},
	{ID: TaskMeal, Title: "Meal", Icon: "utensils", Color: "#FF9800", Description: "Meal or dietary plan"},
	{ID: TaskTherapy, Title: "Therapy", Icon: "heart-pulse", Color: "#9C27B0", Description: "Therapy session"},
	{ID: TaskLab, Title: "Lab", Icon: "flask", Color: "#00BCD4", Description: "Lab test or sample collection"},
	{ID: TaskOther, Title: "Other", Icon: "calendar", Color: "#607D8B", Description: "Anything else"},
}

// Categories returns the ordered task category catalog. Callers own the
// returned slice.
func Categories() []TaskCategory {
	out := make([]TaskCategory, len(taskCategories))
	copy(out, taskCategories)
	return out
}

// CategoryByID looks up a task category by id.
func CategoryByID(id string) (TaskCategory, bool) {
	for _, c := range taskCategories {
		if c.ID == id {
			return c, true
		}
	}
	return TaskCategory{}, false
}
