package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"insight-center-be/internal/entity"
	"insight-center-be/internal/repository/unitofwork"
	"insight-center-be/pkg/database"
	"insight-center-be/pkg/events"

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

// seedDatasets fills every source table with a small, known dataset.
func seedDatasets(t *testing.T, factory unitofwork.RepositoryFactory) {
	t.Helper()
	ctx := context.Background()
	uow := factory.NewUnitOfWork(ctx)

	require.NoError(t, uow.PincodeRepository().UpsertMany(ctx, []*entity.PincodeRecord{
		{Pincode: "560001", State: "Karnataka", District: "Bengaluru Urban", TotalEnrolments: 1000, DemographicUpdates: 300, BiometricUpdates: 200, UpdateIntensity: 0.5, RiskCategory: entity.RiskCritical},
		{Pincode: "110001", State: "Delhi", District: "New Delhi", TotalEnrolments: 2000, DemographicUpdates: 100, BiometricUpdates: 100, UpdateIntensity: 0.1, RiskCategory: entity.RiskWatch},
		{Pincode: "500001", State: "Telangana", District: "Hyderabad", TotalEnrolments: 700, DemographicUpdates: 70, UpdateIntensity: 0.1, RiskCategory: entity.RiskStable},
	}))
	require.NoError(t, uow.PolicyRepository().CreateMany(ctx, []*entity.PolicyRecommendation{
		{Pincode: "560001", State: "Karnataka", District: "Bengaluru Urban", PriorityScore: 0.9, Category: "capacity", Action: "Open a second enrolment centre"},
		{Pincode: "110001", State: "Delhi", District: "New Delhi", PriorityScore: 0.3, Category: "outreach", Action: "Run a child enrolment camp"},
	}))
	require.NoError(t, uow.InsightRepository().CreateMany(ctx, []*entity.Insight{
		{Title: "Update pressure", Body: "Updates are **concentrated** in urban pincodes.", Category: "trend", SortOrder: 1},
	}))
}

type sentMessage struct {
	SessionID string
	Type      string
	Data      interface{}
}

type fakeNotifier struct {
	mu         sync.Mutex
	sent       []sentMessage
	broadcasts []sentMessage
}

func (n *fakeNotifier) SendToSession(sessionID, msgType string, data interface{}) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, sentMessage{SessionID: sessionID, Type: msgType, Data: data})
}

func (n *fakeNotifier) Broadcast(msgType string, data interface{}) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.broadcasts = append(n.broadcasts, sentMessage{Type: msgType, Data: data})
}

func (n *fakeNotifier) sentCount() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.sent)
}

func (n *fakeNotifier) broadcastCount() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.broadcasts)
}

type fakeAuditPublisher struct {
	mu       sync.Mutex
	payloads [][]byte
}

func (p *fakeAuditPublisher) Publish(_ context.Context, payload []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.payloads = append(p.payloads, payload)
	return nil
}

func (p *fakeAuditPublisher) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.payloads)
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}

// blockingSink holds every delivery until released or its context expires.
type blockingSink struct {
	gate    chan struct{}
	once    sync.Once
	mu      sync.Mutex
	tries   int
	started chan struct{}
}

func newBlockingSink() *blockingSink {
	return &blockingSink{gate: make(chan struct{}), started: make(chan struct{}, 1)}
}

func (s *blockingSink) Publish(ctx context.Context, _ events.Event) error {
	s.mu.Lock()
	s.tries++
	s.mu.Unlock()
	select {
	case s.started <- struct{}{}:
	default:
	}
	select {
	case <-s.gate:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *blockingSink) attempts() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tries
}

func (s *blockingSink) release() {
	s.once.Do(func() { close(s.gate) })
}

type recordingSink struct {
	mu    sync.Mutex
	types []string
}

func (s *recordingSink) Publish(_ context.Context, event events.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.types = append(s.types, event.EventType())
	return nil
}

func (s *recordingSink) received() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.types...)
}
