package services

import (
	"sync"
	"testing"

	"github.com/lingo-leap/lingo_api/model"
	"github.com/lingo-leap/lingo_api/services/repositories"
	"github.com/lingo-leap/lingo_api/shared"
)

func TestQuestProgressForwardOnly(t *testing.T) {
	db := newTestDB(t)
	svc := newQuestService(db)
	user := createTestUser(t, db, shared.SkillBeginner)
	quest := createTestQuest(t, db, shared.CriteriaLessonCompletion, 5, 50)

	if _, err := svc.UpdateProgress(user.ID, quest.ID, 3); err != nil {
		t.Fatalf("UpdateProgress failed: %v", err)
	}

	// A lower value must not move the counter backwards
	resp, err := svc.UpdateProgress(user.ID, quest.ID, 2)
	if err != nil {
		t.Fatalf("UpdateProgress failed: %v", err)
	}
	if resp.Progress != 3 {
		t.Errorf("expected progress to stay 3, got %d", resp.Progress)
	}
	if resp.Completed {
		t.Error("quest should not be completed below target")
	}
}

func TestQuestCompletionFlips(t *testing.T) {
	db := newTestDB(t)
	svc := newQuestService(db)
	user := createTestUser(t, db, shared.SkillBeginner)
	quest := createTestQuest(t, db, shared.CriteriaLessonCompletion, 3, 50)

	resp, err := svc.UpdateProgress(user.ID, quest.ID, 3)
	if err != nil {
		t.Fatalf("UpdateProgress failed: %v", err)
	}
	if !resp.Completed {
		t.Error("expected quest completed at target")
	}
	if resp.Claimed {
		t.Error("completion must not imply claimed")
	}
}

func TestClaimRewardExactlyOnce(t *testing.T) {
	db := newTestDB(t)
	svc := newQuestService(db)
	user := createTestUser(t, db, shared.SkillBeginner)
	quest := createTestQuest(t, db, shared.CriteriaLessonCompletion, 1, 50)

	if _, err := svc.UpdateProgress(user.ID, quest.ID, 1); err != nil {
		t.Fatalf("UpdateProgress failed: %v", err)
	}

	resp, err := svc.ClaimReward(user.ID, quest.ID)
	if err != nil {
		t.Fatalf("first claim failed: %v", err)
	}
	if !resp.Claimed || resp.ClaimedAt == nil {
		t.Error("expected claim recorded with timestamp")
	}
	if got := userXP(t, db, user.ID); got != 50 {
		t.Errorf("expected 50 XP after claim, got %d", got)
	}

	_, err = svc.ClaimReward(user.ID, quest.ID)
	appErr, ok := shared.GetAppError(err)
	if !ok || appErr.Code != "ALREADY_CLAIMED" {
		t.Fatalf("expected ALREADY_CLAIMED on second claim, got %v", err)
	}

	// The reward must not double-pay
	if got := userXP(t, db, user.ID); got != 50 {
		t.Errorf("expected XP unchanged after rejected claim, got %d", got)
	}
	if got := ledgerCount(t, db, user.ID); got != 1 {
		t.Errorf("expected a single ledger event, got %d", got)
	}
}

func TestClaimRewardConcurrent(t *testing.T) {
	db := newTestDB(t)
	svc := newQuestService(db)
	user := createTestUser(t, db, shared.SkillBeginner)
	quest := createTestQuest(t, db, shared.CriteriaLessonCompletion, 1, 50)

	if _, err := svc.UpdateProgress(user.ID, quest.ID, 1); err != nil {
		t.Fatalf("UpdateProgress failed: %v", err)
	}

	const claimers = 8
	errs := make(chan error, claimers)
	var wg sync.WaitGroup
	wg.Add(claimers)
	for i := 0; i < claimers; i++ {
		go func() {
			defer wg.Done()
			_, err := svc.ClaimReward(user.ID, quest.ID)
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
		if !ok || appErr.Code != "ALREADY_CLAIMED" {
			t.Fatalf("expected ALREADY_CLAIMED from losing claims, got %v", err)
		}
	}
	if successes != 1 {
		t.Fatalf("expected exactly one winning claim, got %d", successes)
	}

	// The reward pays exactly once no matter how the claims interleave
	if got := userXP(t, db, user.ID); got != 50 {
		t.Errorf("expected 50 XP paid once, got %d", got)
	}
	if got := ledgerCount(t, db, user.ID); got != 1 {
		t.Errorf("expected a single ledger event, got %d", got)
	}
}

func TestMarkClaimedConditionalUpdate(t *testing.T) {
	db := newTestDB(t)
	svc := newQuestService(db)
	user := createTestUser(t, db, shared.SkillBeginner)
	quest := createTestQuest(t, db, shared.CriteriaLessonCompletion, 1, 50)

	if _, err := svc.UpdateProgress(user.ID, quest.ID, 1); err != nil {
		t.Fatalf("UpdateProgress failed: %v", err)
	}

	repo := repositories.NewQuestRepository(db)

	claimed, err := repo.MarkClaimed(nil, user.ID, quest.ID)
	if err != nil {
		t.Fatalf("MarkClaimed failed: %v", err)
	}
	if !claimed {
		t.Fatal("expected first conditional update to win")
	}

	// A second update matches no rows once claimed has flipped
	claimed, err = repo.MarkClaimed(nil, user.ID, quest.ID)
	if err != nil {
		t.Fatalf("MarkClaimed failed: %v", err)
	}
	if claimed {
		t.Error("expected second conditional update to match no rows")
	}
}

func TestClaimValidationOrder(t *testing.T) {
	db := newTestDB(t)
	svc := newQuestService(db)
	user := createTestUser(t, db, shared.SkillBeginner)

	// Unknown quest
	_, err := svc.ClaimReward(user.ID, "missing")
	if appErr, ok := shared.GetAppError(err); !ok || appErr.Code != "NOT_FOUND" {
		t.Fatalf("expected NOT_FOUND for unknown quest, got %v", err)
	}

	// Inactive quest
	inactive := createTestQuest(t, db, shared.CriteriaLessonCompletion, 1, 10)
	db.Model(&model.Quest{}).Where("id = ?", inactive.ID).Update("is_active", false)
	_, err = svc.ClaimReward(user.ID, inactive.ID)
	if appErr, ok := shared.GetAppError(err); !ok || appErr.Code != "INVALID_STATE" {
		t.Fatalf("expected INVALID_STATE for inactive quest, got %v", err)
	}

	// No progress record at all
	quest := createTestQuest(t, db, shared.CriteriaLessonCompletion, 2, 10)
	_, err = svc.ClaimReward(user.ID, quest.ID)
	if appErr, ok := shared.GetAppError(err); !ok || appErr.Code != "INVALID_STATE" {
		t.Fatalf("expected INVALID_STATE without progress record, got %v", err)
	}

	// Progress exists but target not reached
	if _, err := svc.UpdateProgress(user.ID, quest.ID, 1); err != nil {
		t.Fatalf("UpdateProgress failed: %v", err)
	}
	_, err = svc.ClaimReward(user.ID, quest.ID)
	if appErr, ok := shared.GetAppError(err); !ok || appErr.Code != "NOT_COMPLETED" {
		t.Fatalf("expected NOT_COMPLETED below target, got %v", err)
	}
}

func TestLessonCompletionAdvancesQuests(t *testing.T) {
	db := newTestDB(t)
	progression := newProgressionService(db)
	user := createTestUser(t, db, shared.SkillBeginner)
	lesson := createTestLesson(t, db)
	quest := createTestQuest(t, db, shared.CriteriaLessonCompletion, 1, 25)

	if _, err := progression.CompleteLesson(user.ID, lesson.ID, 70, []int{0}); err != nil {
		t.Fatalf("CompleteLesson failed: %v", err)
	}

	var userQuest model.UserQuest
	if err := db.Where("user_id = ? AND quest_id = ?", user.ID, quest.ID).First(&userQuest).Error; err != nil {
		t.Fatalf("expected quest progress created by lesson completion: %v", err)
	}
	if userQuest.Progress != 1 || !userQuest.Completed {
		t.Errorf("expected quest completed at 1/1, got %d completed=%v", userQuest.Progress, userQuest.Completed)
	}
}

func TestGetActiveQuestsIncludesUntouched(t *testing.T) {
	db := newTestDB(t)
	svc := newQuestService(db)
	user := createTestUser(t, db, shared.SkillBeginner)
	createTestQuest(t, db, shared.CriteriaStreak, 7, 100)
	touched := createTestQuest(t, db, shared.CriteriaLessonCompletion, 5, 50)

	if _, err := svc.UpdateProgress(user.ID, touched.ID, 2); err != nil {
		t.Fatalf("UpdateProgress failed: %v", err)
	}

	quests, err := svc.GetActiveQuests(user.ID)
	if err != nil {
		t.Fatalf("GetActiveQuests failed: %v", err)
	}
	if len(quests) != 2 {
		t.Fatalf("expected 2 quests, got %d", len(quests))
	}

	for _, q := range quests {
		switch q.Quest.ID {
		case touched.ID:
			if q.Progress != 2 {
				t.Errorf("expected progress 2 for touched quest, got %d", q.Progress)
			}
		default:
			if q.Progress != 0 || q.Completed || q.Claimed {
				t.Errorf("expected zero state for untouched quest, got %+v", q)
			}
		}
	}
}
