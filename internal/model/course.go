package model

type CourseDifficulty string

const (
	Beginner     CourseDifficulty = "beginner"
	Intermediate CourseDifficulty = "intermediate"
	Advanced     CourseDifficulty = "advanced"
)

// swagger:model Course
type Course struct {
	BaseModel
	Title           string           `gorm:"size:255;not null" json:"title"`
	Description     string           `gorm:"type:text" json:"description"`
	Thumbnail       string           `gorm:"size:255" json:"thumbnail"`
	DurationMinutes int              `gorm:"default:0" json:"durationMinutes"`
	Difficulty      CourseDifficulty `gorm:"size:20;default:'beginner'" json:"difficulty"`
	Category        string           `gorm:"size:100;index" json:"category"`
	Instructor      string           `gorm:"size:255" json:"instructor"`
	IsActive        bool             `gorm:"default:true" json:"isActive"`
	Modules         []CourseModule   `gorm:"foreignKey:CourseID" json:"modules,omitempty"`
}

func (Course) TableName() string {
	return "courses"
}

// swagger:model CourseModule
type CourseModule struct {
	BaseModel
	CourseID        uint   `gorm:"type:bigint unsigned;not null;uniqueIndex:idx_course_order" json:"courseId"`
	Title           string `gorm:"size:255;not null" json:"title"`
	Description     string `gorm:"type:text" json:"description"`
	Order           int    `gorm:"default:0;uniqueIndex:idx_course_order" json:"order"`
	DurationMinutes int    `gorm:"default:0" json:"durationMinutes"`
	VideoURL        string `gorm:"size:255" json:"videoUrl"`
	Content         string `gorm:"type:text" json:"content"`
}

func (CourseModule) TableName() string {
	return "course_modules"
}
