package implementation

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"insight-center-be/internal/entity"
	"insight-center-be/internal/repository/specification"
	"insight-center-be/pkg/database"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.NewSQLiteDB(fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_")), logger.Silent)
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))
	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		_ = sqlDB.Close()
	})
	return db
}

func samplePincodes() []*entity.PincodeRecord {
	return []*entity.PincodeRecord{
		{Pincode: "560001", State: "Karnataka", District: "Bengaluru Urban", TotalEnrolments: 1000, DemographicUpdates: 300, BiometricUpdates: 200, UpdateIntensity: 0.5, RiskCategory: entity.RiskCritical, Details: map[string]interface{}{"centres": float64(4)}},
		{Pincode: "560002", State: "Karnataka", District: "Bengaluru Urban", TotalEnrolments: 500, DemographicUpdates: 50, BiometricUpdates: 50, UpdateIntensity: 0.2, RiskCategory: entity.RiskStable},
		{Pincode: "110001", State: "Delhi", District: "New Delhi", TotalEnrolments: 2000, DemographicUpdates: 100, BiometricUpdates: 100, UpdateIntensity: 0.1, RiskCategory: entity.RiskWatch},
		{Pincode: "500001", State: "Telangana", District: "Hyderabad", TotalEnrolments: 700, DemographicUpdates: 70, BiometricUpdates: 0, UpdateIntensity: 0.1, RiskCategory: entity.RiskCritical},
	}
}

func TestPincodeRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewPincodeRepository(newTestDB(t))
	require.NoError(t, repo.UpsertMany(ctx, samplePincodes()))

	t.Run("find one by pincode", func(t *testing.T) {
		rec, err := repo.FindOne(ctx, specification.ByPincode{Pincode: "560001"})
		require.NoError(t, err)
		require.NotNil(t, rec)
		assert.Equal(t, "Bengaluru Urban", rec.District)
		assert.Equal(t, entity.RiskCritical, rec.RiskCategory)
		assert.Equal(t, float64(4), rec.Details["centres"])
	})

	t.Run("missing pincode is nil without error", func(t *testing.T) {
		rec, err := repo.FindOne(ctx, specification.ByPincode{Pincode: "999999"})
		require.NoError(t, err)
		assert.Nil(t, rec)
	})

	t.Run("upsert replaces existing rows", func(t *testing.T) {
		updated := samplePincodes()[1]
		updated.TotalEnrolments = 900
		require.NoError(t, repo.UpsertMany(ctx, []*entity.PincodeRecord{updated}))

		count, err := repo.Count(ctx)
		require.NoError(t, err)
		assert.EqualValues(t, 4, count)

		rec, err := repo.FindOne(ctx, specification.ByPincode{Pincode: "560002"})
		require.NoError(t, err)
		assert.EqualValues(t, 900, rec.TotalEnrolments)
	})

	t.Run("totals", func(t *testing.T) {
		totals, err := repo.Totals(ctx)
		require.NoError(t, err)
		assert.EqualValues(t, 4, totals.TotalPincodes)
		assert.EqualValues(t, 3, totals.TotalDistricts)
		assert.EqualValues(t, 3, totals.TotalStates)
		assert.EqualValues(t, 1000+900+2000+700, totals.TotalEnrolments)
		assert.EqualValues(t, 500+100+200+70, totals.TotalUpdates)
		assert.EqualValues(t, 2, totals.CriticalPincodes)
	})

	t.Run("state summary ordered by enrolments", func(t *testing.T) {
		rows, err := repo.SummarizeByState(ctx)
		require.NoError(t, err)
		require.Len(t, rows, 3)
		assert.Equal(t, "Delhi", rows[0].State)
		assert.Equal(t, "Karnataka", rows[1].State)
		assert.EqualValues(t, 2, rows[1].Pincodes)
		assert.EqualValues(t, 1, rows[1].Districts)
		assert.EqualValues(t, 1, rows[1].CriticalPincodes)
	})

	t.Run("filter by state", func(t *testing.T) {
		rows, err := repo.FindAll(ctx, specification.ByState{State: "Karnataka"}, specification.OrderBy{Field: "pincode"})
		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, "560001", rows[0].Pincode)
	})
}

func TestPincodeRepositoryTotalsOnEmptyTable(t *testing.T) {
	repo := NewPincodeRepository(newTestDB(t))

	totals, err := repo.Totals(context.Background())
	require.NoError(t, err)
	assert.Zero(t, totals.TotalPincodes)
	assert.Zero(t, totals.TotalEnrolments)
}

func TestPolicyRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewPolicyRepository(newTestDB(t))

	items := []*entity.PolicyRecommendation{
		{Pincode: "560001", State: "Karnataka", District: "Bengaluru Urban", PriorityScore: 0.9, Category: "capacity", Action: "Open a second enrolment centre"},
		{Pincode: "110001", State: "Delhi", District: "New Delhi", PriorityScore: 0.4, Category: "outreach", Action: "Run a child enrolment camp"},
		{Pincode: "500001", State: "Telangana", District: "Hyderabad", PriorityScore: 0.9, Category: "capacity", Action: "Extend centre hours", Details: map[string]interface{}{"hours": "8-20"}},
	}
	require.NoError(t, repo.CreateMany(ctx, items))
	for _, item := range items {
		assert.NotEmpty(t, item.Id)
	}

	ranked, err := repo.FindAll(ctx, specification.ByPriority{}, specification.Pagination{Limit: 2})
	require.NoError(t, err)
	require.Len(t, ranked, 2)
	assert.Equal(t, "500001", ranked[0].Pincode)
	assert.Equal(t, "560001", ranked[1].Pincode)
	assert.Equal(t, "8-20", ranked[0].Details["hours"])

	one, err := repo.FindOne(ctx, specification.ByPincode{Pincode: "110001"})
	require.NoError(t, err)
	require.NotNil(t, one)
	assert.Equal(t, "outreach", one.Category)

	none, err := repo.FindOne(ctx, specification.ByPincode{Pincode: "999999"})
	require.NoError(t, err)
	assert.Nil(t, none)
}

func TestSearchEventRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewSearchEventRepository(newTestDB(t))

	base := time.Now().Add(-time.Hour)
	events := []*entity.SearchEvent{
		{SessionId: "a", Query: "560001", Pincode: "560001", Outcome: "selected", CreatedAt: base},
		{SessionId: "b", Query: "560001", Pincode: "560001", Outcome: "selected", CreatedAt: base.Add(time.Minute)},
		{SessionId: "a", Query: "110001", Pincode: "110001", Outcome: "not_found", CreatedAt: base.Add(2 * time.Minute)},
		{SessionId: "c", Query: "5600", Outcome: "invalid_input", CreatedAt: base.Add(3 * time.Minute)},
	}
	for _, e := range events {
		require.NoError(t, repo.Create(ctx, e))
	}

	count, err := repo.Count(ctx, specification.Filter("session_id", "a"))
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)

	top, err := repo.TopPincodes(ctx, 5)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, "560001", top[0].Pincode)
	assert.EqualValues(t, 2, top[0].Searches)

	recent, err := repo.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "5600", recent[0].Query)
}

func TestInsightRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewInsightRepository(newTestDB(t))

	require.NoError(t, repo.CreateMany(ctx, []*entity.Insight{
		{Title: "Second", Body: "b", SortOrder: 2},
		{Title: "First", Body: "a", SortOrder: 1},
	}))

	rows, err := repo.FindAll(ctx, specification.OrderBy{Field: "sort_order"})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "First", rows[0].Title)
}
