package services

import (
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/lingo-leap/lingo_api/dto"
	"github.com/lingo-leap/lingo_api/model"
	"github.com/lingo-leap/lingo_api/services/repositories"
	"github.com/lingo-leap/lingo_api/shared"
)

func TestSubmitQuizScoring(t *testing.T) {
	db := newTestDB(t)
	svc := newQuizService(db)
	user := createTestUser(t, db, shared.SkillBeginner)
	quiz := createTestQuiz(t, db, "2026-08-28", shared.SkillBeginner, 20)

	// 2 of 3 correct rounds half up to 67
	resp, err := svc.SubmitQuiz(user.ID, &dto.SubmitQuizRequest{
		QuizID:  quiz.ID,
		Answers: []int{0, 1, 0},
	})
	if err != nil {
		t.Fatalf("SubmitQuiz failed: %v", err)
	}

	if resp.Score != 67 {
		t.Errorf("expected score 67, got %d", resp.Score)
	}
	if resp.Correct != 2 || resp.Total != 3 {
		t.Errorf("expected 2/3 correct, got %d/%d", resp.Correct, resp.Total)
	}
	if resp.XPGained != 20 {
		t.Errorf("expected base reward 20 below bonus bar, got %d", resp.XPGained)
	}
	if got := userXP(t, db, user.ID); got != 20 {
		t.Errorf("expected 20 total XP, got %d", got)
	}
}

func TestSubmitQuizBonus(t *testing.T) {
	db := newTestDB(t)
	svc := newQuizService(db)
	user := createTestUser(t, db, shared.SkillBeginner)
	quiz := createTestQuiz(t, db, "2026-08-28", shared.SkillBeginner, 20)

	resp, err := svc.SubmitQuiz(user.ID, &dto.SubmitQuizRequest{
		QuizID:  quiz.ID,
		Answers: []int{0, 1, 2},
	})
	if err != nil {
		t.Fatalf("SubmitQuiz failed: %v", err)
	}

	if resp.Score != 100 {
		t.Errorf("expected score 100, got %d", resp.Score)
	}
	if resp.XPGained != 30 {
		t.Errorf("expected 20 reward + 10 bonus, got %d", resp.XPGained)
	}
}

func TestSubmitQuizAtMostOnce(t *testing.T) {
	db := newTestDB(t)
	svc := newQuizService(db)
	user := createTestUser(t, db, shared.SkillBeginner)
	quiz := createTestQuiz(t, db, "2026-08-28", shared.SkillBeginner, 20)

	if _, err := svc.SubmitQuiz(user.ID, &dto.SubmitQuizRequest{
		QuizID:  quiz.ID,
		Answers: []int{0, 1, 2},
	}); err != nil {
		t.Fatalf("first submission failed: %v", err)
	}

	_, err := svc.SubmitQuiz(user.ID, &dto.SubmitQuizRequest{
		QuizID:  quiz.ID,
		Answers: []int{0, 1, 2},
	})
	appErr, ok := shared.GetAppError(err)
	if !ok || appErr.Code != "ALREADY_COMPLETED" {
		t.Fatalf("expected ALREADY_COMPLETED on resubmission, got %v", err)
	}

	// Completion is checked before the answer sheet is validated
	_, err = svc.SubmitQuiz(user.ID, &dto.SubmitQuizRequest{
		QuizID:  quiz.ID,
		Answers: []int{0},
	})
	if appErr, ok := shared.GetAppError(err); !ok || appErr.Code != "ALREADY_COMPLETED" {
		t.Fatalf("expected ALREADY_COMPLETED to win over answer validation, got %v", err)
	}

	// A rejected resubmission must not pay again
	if got := userXP(t, db, user.ID); got != 30 {
		t.Errorf("expected XP unchanged at 30, got %d", got)
	}
	if got := ledgerCount(t, db, user.ID); got != 1 {
		t.Errorf("expected single ledger event, got %d", got)
	}
}

func TestSubmitQuizConcurrent(t *testing.T) {
	db := newTestDB(t)
	svc := newQuizService(db)
	user := createTestUser(t, db, shared.SkillBeginner)
	quiz := createTestQuiz(t, db, "2026-08-28", shared.SkillBeginner, 20)

	const submitters = 8
	errs := make(chan error, submitters)
	var wg sync.WaitGroup
	wg.Add(submitters)
	for i := 0; i < submitters; i++ {
		go func() {
			defer wg.Done()
			_, err := svc.SubmitQuiz(user.ID, &dto.SubmitQuizRequest{
				QuizID:  quiz.ID,
				Answers: []int{0, 1, 2},
			})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	successes := 0
	for err := range errs {
		if err == nil {
			successes++
			continue
		}
		appErr, ok := shared.GetAppError(err)
		if !ok || appErr.Code != "ALREADY_COMPLETED" {
			t.Fatalf("expected ALREADY_COMPLETED from losing submissions, got %v", err)
		}
	}
	if successes != 1 {
		t.Fatalf("expected exactly one accepted submission, got %d", successes)
	}

	// One grant total regardless of how the submissions interleave
	if got := userXP(t, db, user.ID); got != 30 {
		t.Errorf("expected 30 XP paid once, got %d", got)
	}
	if got := ledgerCount(t, db, user.ID); got != 1 {
		t.Errorf("expected a single ledger event, got %d", got)
	}
}

func TestCompleteQuizConditionalWrite(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, shared.SkillBeginner)
	quiz := createTestQuiz(t, db, "2026-08-28", shared.SkillBeginner, 20)

	repo := repositories.NewQuizRepository(db)
	answers, _ := json.Marshal([]int{0, 1, 2})

	completed, err := repo.CompleteQuiz(nil, user.ID, quiz.ID, 100, answers)
	if err != nil {
		t.Fatalf("CompleteQuiz failed: %v", err)
	}
	if !completed {
		t.Fatal("expected first write to win")
	}

	// A second write is rejected and must not touch the stored score
	completed, err = repo.CompleteQuiz(nil, user.ID, quiz.ID, 50, answers)
	if err != nil {
		t.Fatalf("CompleteQuiz failed: %v", err)
	}
	if completed {
		t.Error("expected second write to be rejected")
	}

	progress, err := repo.GetQuizProgress(user.ID, quiz.ID)
	if err != nil {
		t.Fatalf("GetQuizProgress failed: %v", err)
	}
	if progress.Score != 100 {
		t.Errorf("expected stored score unchanged at 100, got %d", progress.Score)
	}
}

func TestSubmitQuizNoQuestions(t *testing.T) {
	db := newTestDB(t)
	svc := newQuizService(db)
	user := createTestUser(t, db, shared.SkillBeginner)

	questions, _ := json.Marshal([]model.QuizQuestion{})
	quiz := &model.DailyQuiz{
		ID:         uuid.New().String(),
		QuizDate:   "2026-08-28",
		Difficulty: shared.SkillBeginner,
		Questions:  questions,
		RewardXP:   20,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}
	if err := db.Create(quiz).Error; err != nil {
		t.Fatalf("failed to create quiz: %v", err)
	}

	_, err := svc.SubmitQuiz(user.ID, &dto.SubmitQuizRequest{QuizID: quiz.ID, Answers: []int{}})
	appErr, ok := shared.GetAppError(err)
	if !ok || appErr.Code != "INTERNAL_ERROR" {
		t.Fatalf("expected INTERNAL_ERROR for quiz without questions, got %v", err)
	}
}

func TestSubmitQuizAnswerCountMismatch(t *testing.T) {
	db := newTestDB(t)
	svc := newQuizService(db)
	user := createTestUser(t, db, shared.SkillBeginner)
	quiz := createTestQuiz(t, db, "2026-08-28", shared.SkillBeginner, 20)

	_, err := svc.SubmitQuiz(user.ID, &dto.SubmitQuizRequest{
		QuizID:  quiz.ID,
		Answers: []int{0},
	})
	appErr, ok := shared.GetAppError(err)
	if !ok || appErr.Code != "BAD_REQUEST" {
		t.Fatalf("expected BAD_REQUEST for answer count mismatch, got %v", err)
	}
}

func TestGetDailyQuizStripsAnswers(t *testing.T) {
	db := newTestDB(t)
	svc := newQuizService(db)
	user := createTestUser(t, db, shared.SkillBeginner)
	today := time.Now().Format("2006-01-02")
	quiz := createTestQuiz(t, db, today, shared.SkillBeginner, 20)

	resp, err := svc.GetDailyQuiz(user.ID, "", "")
	if err != nil {
		t.Fatalf("GetDailyQuiz failed: %v", err)
	}
	if resp.Completed {
		t.Error("quiz should not be completed yet")
	}
	for _, q := range resp.Questions {
		if q.CorrectOption != nil {
			t.Fatalf("correct option leaked before completion: %+v", q)
		}
	}

	if _, err := svc.SubmitQuiz(user.ID, &dto.SubmitQuizRequest{
		QuizID:  quiz.ID,
		Answers: []int{0, 1, 2},
	}); err != nil {
		t.Fatalf("SubmitQuiz failed: %v", err)
	}

	resp, err = svc.GetDailyQuiz(user.ID, "", "")
	if err != nil {
		t.Fatalf("GetDailyQuiz after completion failed: %v", err)
	}
	if !resp.Completed {
		t.Error("expected completed flag after submission")
	}
	if resp.Score == nil || *resp.Score != 100 {
		t.Errorf("expected recorded score 100, got %v", resp.Score)
	}
	for i, q := range resp.Questions {
		if q.CorrectOption == nil {
			t.Fatalf("expected correct option revealed after completion for question %d", i)
		}
	}
}

func TestGetDailyQuizDifficultyDefaults(t *testing.T) {
	db := newTestDB(t)
	svc := newQuizService(db)
	today := time.Now().Format("2006-01-02")
	createTestQuiz(t, db, today, shared.SkillBeginner, 20)
	createTestQuiz(t, db, today, shared.SkillIntermediate, 25)

	// Onboarded user gets their skill tier
	intermediate := createTestUser(t, db, shared.SkillIntermediate)
	resp, err := svc.GetDailyQuiz(intermediate.ID, "", "")
	if err != nil {
		t.Fatalf("GetDailyQuiz failed: %v", err)
	}
	if resp.Difficulty != shared.SkillIntermediate {
		t.Errorf("expected intermediate quiz, got %q", resp.Difficulty)
	}

	// Users without a skill level fall back to beginner
	fresh := createTestUser(t, db, "")
	resp, err = svc.GetDailyQuiz(fresh.ID, "", "")
	if err != nil {
		t.Fatalf("GetDailyQuiz failed: %v", err)
	}
	if resp.Difficulty != shared.SkillBeginner {
		t.Errorf("expected beginner fallback, got %q", resp.Difficulty)
	}
}

func TestGetDailyQuizValidation(t *testing.T) {
	db := newTestDB(t)
	svc := newQuizService(db)
	user := createTestUser(t, db, shared.SkillBeginner)

	_, err := svc.GetDailyQuiz(user.ID, "28-08-2026", "")
	if appErr, ok := shared.GetAppError(err); !ok || appErr.Code != "BAD_REQUEST" {
		t.Fatalf("expected BAD_REQUEST for malformed date, got %v", err)
	}

	_, err = svc.GetDailyQuiz(user.ID, "", "impossible")
	if appErr, ok := shared.GetAppError(err); !ok || appErr.Code != "BAD_REQUEST" {
		t.Fatalf("expected BAD_REQUEST for unknown difficulty, got %v", err)
	}

	_, err = svc.GetDailyQuiz(user.ID, "2001-01-01", "")
	if appErr, ok := shared.GetAppError(err); !ok || appErr.Code != "NOT_FOUND" {
		t.Fatalf("expected NOT_FOUND when no quiz exists, got %v", err)
	}
}

func TestPassingQuizAdvancesQuizQuests(t *testing.T) {
	db := newTestDB(t)
	svc := newQuizService(db)
	user := createTestUser(t, db, shared.SkillBeginner)
	quiz := createTestQuiz(t, db, "2026-08-28", shared.SkillBeginner, 20)
	quest := createTestQuest(t, db, shared.CriteriaQuizScore, 1, 40)

	if _, err := svc.SubmitQuiz(user.ID, &dto.SubmitQuizRequest{
		QuizID:  quiz.ID,
		Answers: []int{0, 1, 2},
	}); err != nil {
		t.Fatalf("SubmitQuiz failed: %v", err)
	}

	userQuest, err := svc.questSvc.questRepo.GetUserQuest(user.ID, quest.ID)
	if err != nil {
		t.Fatalf("expected quiz quest progress: %v", err)
	}
	if userQuest.Progress != 1 || !userQuest.Completed {
		t.Errorf("expected quiz quest 1/1 completed, got %d completed=%v", userQuest.Progress, userQuest.Completed)
	}
}
