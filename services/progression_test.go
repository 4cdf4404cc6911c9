package services

import (
	"testing"

	"github.com/lingo-leap/lingo_api/model"
	"github.com/lingo-leap/lingo_api/services/repositories"
	"github.com/lingo-leap/lingo_api/shared"
)

func TestCompleteLessonGrantsXP(t *testing.T) {
	db := newTestDB(t)
	svc := newProgressionService(db)
	user := createTestUser(t, db, shared.SkillBeginner)
	lesson := createTestLesson(t, db)

	resp, err := svc.CompleteLesson(user.ID, lesson.ID, 90, []int{0})
	if err != nil {
		t.Fatalf("CompleteLesson failed: %v", err)
	}

	// 10 base + 5 bonus for score above 80
	if resp.XPGained != 15 {
		t.Errorf("expected 15 XP gained, got %d", resp.XPGained)
	}
	if !resp.Completed {
		t.Error("expected lesson marked completed")
	}
	if got := userXP(t, db, user.ID); got != 15 {
		t.Errorf("expected 15 total XP, got %d", got)
	}
	if got := ledgerCount(t, db, user.ID); got != 1 {
		t.Errorf("expected 1 ledger event, got %d", got)
	}
}

func TestCompleteLessonNoBonusAtCutoff(t *testing.T) {
	db := newTestDB(t)
	svc := newProgressionService(db)
	user := createTestUser(t, db, shared.SkillBeginner)
	lesson := createTestLesson(t, db)

	// 80 does not clear the "score > 80" bonus bar
	resp, err := svc.CompleteLesson(user.ID, lesson.ID, 80, []int{0})
	if err != nil {
		t.Fatalf("CompleteLesson failed: %v", err)
	}
	if resp.XPGained != 10 {
		t.Errorf("expected 10 XP gained at score 80, got %d", resp.XPGained)
	}
}

func TestCompleteLessonRepeatAccumulates(t *testing.T) {
	db := newTestDB(t)
	svc := newProgressionService(db)
	user := createTestUser(t, db, shared.SkillBeginner)
	lesson := createTestLesson(t, db)

	if _, err := svc.CompleteLesson(user.ID, lesson.ID, 90, []int{0}); err != nil {
		t.Fatalf("first completion failed: %v", err)
	}
	resp, err := svc.CompleteLesson(user.ID, lesson.ID, 50, []int{1})
	if err != nil {
		t.Fatalf("second completion failed: %v", err)
	}

	// Repeats grant again (10 base, no bonus at 50)
	if resp.XPGained != 10 {
		t.Errorf("expected 10 XP on repeat, got %d", resp.XPGained)
	}
	if got := userXP(t, db, user.ID); got != 25 {
		t.Errorf("expected 25 total XP, got %d", got)
	}
	if got := ledgerCount(t, db, user.ID); got != 2 {
		t.Errorf("expected 2 ledger events, got %d", got)
	}

	// Best score never regresses
	var progress model.LessonProgress
	if err := db.Where("user_id = ? AND lesson_id = ?", user.ID, lesson.ID).First(&progress).Error; err != nil {
		t.Fatalf("failed to load lesson progress: %v", err)
	}
	if progress.Score != 90 {
		t.Errorf("expected best score 90 to survive, got %d", progress.Score)
	}

	var rows int64
	db.Model(&model.LessonProgress{}).Where("user_id = ?", user.ID).Count(&rows)
	if rows != 1 {
		t.Errorf("expected a single progress row, got %d", rows)
	}
}

func TestCompleteLessonRepeatGrantsDisabled(t *testing.T) {
	db := newTestDB(t)
	svc := newProgressionService(db)
	svc.repeatGrants = false
	user := createTestUser(t, db, shared.SkillBeginner)
	lesson := createTestLesson(t, db)

	if _, err := svc.CompleteLesson(user.ID, lesson.ID, 90, []int{0}); err != nil {
		t.Fatalf("first completion failed: %v", err)
	}
	resp, err := svc.CompleteLesson(user.ID, lesson.ID, 95, []int{0})
	if err != nil {
		t.Fatalf("second completion failed: %v", err)
	}

	if resp.XPGained != 0 {
		t.Errorf("expected 0 XP on repeat with grants disabled, got %d", resp.XPGained)
	}
	if got := userXP(t, db, user.ID); got != 15 {
		t.Errorf("expected 15 total XP, got %d", got)
	}
}

func TestCompleteLessonUnknownLesson(t *testing.T) {
	db := newTestDB(t)
	svc := newProgressionService(db)
	user := createTestUser(t, db, shared.SkillBeginner)

	_, err := svc.CompleteLesson(user.ID, "missing", 90, nil)
	appErr, ok := shared.GetAppError(err)
	if !ok || appErr.Code != "NOT_FOUND" {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
}

func TestGrantXPRequiresProgressRow(t *testing.T) {
	db := newTestDB(t)
	repo := repositories.NewUserRepository(db)

	err := repo.GrantXP(nil, "no-such-user", 10, shared.XPSourceLesson, "l1")
	if err == nil {
		t.Fatal("expected error when no progress row exists")
	}

	// The ledger must not record a grant the running total never received
	var count int64
	db.Model(&model.XPEvent{}).Where("user_id = ?", "no-such-user").Count(&count)
	if count != 0 {
		t.Errorf("expected no ledger event without a progress row, got %d", count)
	}
}

func TestLevelCalculation(t *testing.T) {
	svc := &ProgressionService{}

	cases := []struct {
		xp    int
		level int
	}{
		{0, 1},
		{99, 1},
		{100, 2},
		{249, 2},
		{250, 3},
		{475, 4},
	}

	for _, tc := range cases {
		if got := svc.calculateLevel(tc.xp); got != tc.level {
			t.Errorf("calculateLevel(%d) = %d, want %d", tc.xp, got, tc.level)
		}
	}

	if got := svc.calculateXPToNextLevel(0); got != 100 {
		t.Errorf("expected 100 XP to level 2, got %d", got)
	}
	if got := svc.calculateXPToNextLevel(100); got != 150 {
		t.Errorf("expected 150 XP from level 2 to 3, got %d", got)
	}
}

func TestGetUserProgress(t *testing.T) {
	db := newTestDB(t)
	svc := newProgressionService(db)
	user := createTestUser(t, db, shared.SkillIntermediate)
	lesson := createTestLesson(t, db)

	if _, err := svc.CompleteLesson(user.ID, lesson.ID, 100, []int{0}); err != nil {
		t.Fatalf("CompleteLesson failed: %v", err)
	}

	resp, err := svc.GetUserProgress(user.ID)
	if err != nil {
		t.Fatalf("GetUserProgress failed: %v", err)
	}

	if resp.XP != 15 {
		t.Errorf("expected 15 XP, got %d", resp.XP)
	}
	if resp.SkillLevel != shared.SkillIntermediate {
		t.Errorf("expected skill level carried through, got %q", resp.SkillLevel)
	}
	if len(resp.CompletedLessons) != 1 || resp.CompletedLessons[0] != lesson.ID {
		t.Errorf("expected completed lessons to list %s, got %v", lesson.ID, resp.CompletedLessons)
	}
	if resp.Streak != 1 {
		t.Errorf("expected streak 1 after first activity, got %d", resp.Streak)
	}
}

func TestStreakSameDayUnchanged(t *testing.T) {
	db := newTestDB(t)
	svc := newProgressionService(db)
	user := createTestUser(t, db, shared.SkillBeginner)
	lesson := createTestLesson(t, db)

	for i := 0; i < 3; i++ {
		if _, err := svc.CompleteLesson(user.ID, lesson.ID, 70, []int{0}); err != nil {
			t.Fatalf("completion %d failed: %v", i, err)
		}
	}

	var progress model.UserProgress
	if err := db.Where("user_id = ?", user.ID).First(&progress).Error; err != nil {
		t.Fatalf("failed to load progress: %v", err)
	}
	if progress.Streak != 1 {
		t.Errorf("expected streak to stay 1 within the same day, got %d", progress.Streak)
	}
}

func TestXPLedger(t *testing.T) {
	db := newTestDB(t)
	svc := newProgressionService(db)
	user := createTestUser(t, db, shared.SkillBeginner)
	lesson := createTestLesson(t, db)

	if _, err := svc.CompleteLesson(user.ID, lesson.ID, 90, []int{0}); err != nil {
		t.Fatalf("CompleteLesson failed: %v", err)
	}

	ledger, err := svc.GetXPLedger(user.ID, 10)
	if err != nil {
		t.Fatalf("GetXPLedger failed: %v", err)
	}

	if ledger.Total != 15 {
		t.Errorf("expected ledger total 15, got %d", ledger.Total)
	}
	if len(ledger.Events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(ledger.Events))
	}
	if ledger.Events[0].Source != shared.XPSourceLesson {
		t.Errorf("expected source %q, got %q", shared.XPSourceLesson, ledger.Events[0].Source)
	}
	if ledger.Events[0].Amount != 15 {
		t.Errorf("expected amount 15, got %d", ledger.Events[0].Amount)
	}
}
