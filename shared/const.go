package shared

const (
	UserID = "user_id"

	SkillBeginner     = "beginner"
	SkillIntermediate = "intermediate"
	SkillExpert       = "expert"
	SkillMaster       = "master"

	QuestTypeDaily   = "daily"
	QuestTypeMonthly = "monthly"

	CriteriaLessonCompletion = "lesson_completion"
	CriteriaStreak           = "streak"
	CriteriaQuizScore        = "quiz_score"

	XPSourceLesson = "lesson"
	XPSourceQuest  = "quest"
	XPSourceQuiz   = "daily_quiz"
)

// SkillLevels in ascending difficulty order.
var SkillLevels = []string{SkillBeginner, SkillIntermediate, SkillExpert, SkillMaster}

func IsValidSkillLevel(level string) bool {
	for _, l := range SkillLevels {
		if l == level {
			return true
		}
	}
	return false
}
