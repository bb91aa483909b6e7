package storage

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/google/uuid"
)

// NutritionSummary — счётчики порций за день. Пять фиксированных категорий,
// отсутствующие поля при декодировании JSON остаются нулями.
type NutritionSummary struct {
	ProteinServings float64 `json:"protein_servings"`
	VegServings     float64 `json:"veg_servings"`
	CarbServings    float64 `json:"carb_servings"`
	SnackServings   float64 `json:"snack_servings"`
	WaterMl         float64 `json:"water_ml"`
}

// Add прибавляет delta по всем категориям.
func (n *NutritionSummary) Add(delta NutritionSummary) {
	n.ProteinServings += delta.ProteinServings
	n.VegServings += delta.VegServings
	n.CarbServings += delta.CarbServings
	n.SnackServings += delta.SnackServings
	n.WaterMl += delta.WaterMl
}

// Targets — дневные цели по питанию. Те же пять категорий, что и в NutritionSummary.
type Targets struct {
	ProteinServings float64   `json:"protein_servings"`
	VegServings     float64   `json:"veg_servings"`
	CarbServings    float64   `json:"carb_servings"`
	SnackServings   float64   `json:"snack_servings"`
	WaterMl         float64   `json:"water_ml"`
	UpdatedAt       time.Time `json:"-"`
}

// LogEntry — одна запись журнала: что и когда было съедено.
// Порядок записей значим (audit trail), записи только добавляются.
type LogEntry struct {
	ID        uuid.UUID        `json:"id"`
	Timestamp time.Time        `json:"timestamp"`
	Items     []string         `json:"items,omitempty"`
	Summary   NutritionSummary `json:"summary"`
	Note      string           `json:"note,omitempty"`
	PhotoKey  string           `json:"photo_key,omitempty"`
}

// DailyLog — журнал за один календарный день. Создаётся лениво при первом
// обращении к дате. Инвариант: Consumed равен пополевой сумме Entries[*].Summary.
type DailyLog struct {
	Date      string           `json:"date"` // YYYY-MM-DD
	Checkins  map[string]bool  `json:"checkins"`
	Consumed  NutritionSummary `json:"consumed"`
	Entries   []LogEntry       `json:"entries"`
	CreatedAt time.Time        `json:"-"`
	UpdatedAt time.Time        `json:"-"`
}

// MealSlot — настроенный приём пищи с целевым временем и окном напоминаний.
type MealSlot struct {
	ID            string `json:"id"`
	Label         string `json:"label"`
	Time          string `json:"time"` // HH:MM
	WindowMinutes int    `json:"window_minutes"`
}

// QuietHours — суточный интервал, в котором напоминания подавляются.
// Start == End означает, что тихие часы выключены.
type QuietHours struct {
	Start string `json:"start"` // HH:MM
	End   string `json:"end"`   // HH:MM
}

// Settings — настройки напоминаний. Документ целиком заменяется при записи.
type Settings struct {
	IntervalMinutes int        `json:"interval_minutes"`
	QuietHours      QuietHours `json:"quiet_hours"`
	Meals           []MealSlot `json:"meals"`
	UpdatedAt       time.Time  `json:"-"`
}

// Subscription — push-подписка браузера. Идентифицируется endpoint'ом:
// не более одной подписки на endpoint.
type Subscription struct {
	ID        string    `json:"id"` // stable hash of the endpoint
	Endpoint  string    `json:"endpoint"`
	P256dh    string    `json:"p256dh"`
	Auth      string    `json:"auth"`
	CreatedAt time.Time `json:"created_at"`
}

// SubscriptionID returns the stable identifier for an endpoint URL.
func SubscriptionID(endpoint string) string {
	sum := sha256.Sum256([]byte(endpoint))
	return hex.EncodeToString(sum[:16])
}

// NagState — отметка последней отправки напоминания для пары (дата, слот).
// Используется только для дебаунса; потеря записи стоит максимум одного
// лишнего напоминания.
type NagState struct {
	Date       string    `json:"date"`
	SlotID     string    `json:"slot_id"`
	LastSentAt time.Time `json:"last_sent_at"`
}

// Storage — корневой интерфейс хранилища.
type Storage interface {
	// Close закрывает соединение (для Postgres)
	Close() error
}

// DailyLogStorage — интерфейс для журналов по датам.
type DailyLogStorage interface {
	// GetDailyLog возвращает журнал за дату. bool=false означает отсутствие записи.
	GetDailyLog(ctx context.Context, date string) (DailyLog, bool, error)

	// PutDailyLog сохраняет журнал целиком (upsert по дате).
	PutDailyLog(ctx context.Context, log DailyLog) error
}

// SettingsStorage — интерфейс для настроек напоминаний (single-tenant, один документ).
type SettingsStorage interface {
	// GetSettings returns the stored settings document. bool=false means not found.
	GetSettings(ctx context.Context) (Settings, bool, error)

	// UpsertSettings replaces the settings document (last-writer-wins).
	UpsertSettings(ctx context.Context, s Settings) (Settings, error)
}

// TargetsStorage — интерфейс для дневных целей (single-tenant, один документ).
type TargetsStorage interface {
	// GetTargets returns the stored targets document. bool=false means not found.
	GetTargets(ctx context.Context) (Targets, bool, error)

	// UpsertTargets replaces the targets document (last-writer-wins).
	UpsertTargets(ctx context.Context, t Targets) (Targets, error)
}

// SubscriptionsStorage — интерфейс для push-подписок.
// Конкурентно-безопасное множество с ключом по endpoint.
type SubscriptionsStorage interface {
	// ListSubscriptions возвращает все подписки.
	ListSubscriptions(ctx context.Context) ([]Subscription, error)

	// UpsertSubscription добавляет или заменяет подписку по её ID.
	UpsertSubscription(ctx context.Context, sub Subscription) error

	// DeleteSubscription удаляет подписку по ID. Отсутствие записи не ошибка.
	DeleteSubscription(ctx context.Context, id string) error
}

// NagStateStorage — интерфейс для состояния дебаунса напоминаний.
// Записи обновляются поштучно (merge/upsert), чужие ключи не затрагиваются.
type NagStateStorage interface {
	// GetLastSent возвращает время последней отправки для (date, slot).
	// bool=false означает, что напоминание ещё не отправлялось.
	GetLastSent(ctx context.Context, date, slotID string) (time.Time, bool, error)

	// SetLastSent записывает время последней отправки для (date, slot).
	SetLastSent(ctx context.Context, date, slotID string, sentAt time.Time) error
}
