package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// SeatHold is a temporary, TTL-bound claim on a seat set placed before
// booking. Holds are advisory: the booking transaction's uniqueness
// constraint is what actually prevents double-booking.
type SeatHold struct {
	ID        string
	UserID    uuid.UUID
	ShowID    uuid.UUID
	Seats     []string
	ExpiresAt time.Time
}

type SeatHoldRepository interface {
	// HoldSeats claims all seats or none. On contention it returns the
	// first seat already held and ok=false.
	HoldSeats(ctx context.Context, showID, userID uuid.UUID, seats []string, ttl time.Duration) (hold *SeatHold, contendedSeat string, err error)

	// ReleaseHold removes a hold; only the owning user may release it.
	ReleaseHold(ctx context.Context, holdID string, userID uuid.UUID) (bool, error)

	// ReleaseSeats drops the given seat claims if owned by the user. Used
	// after a successful booking so held seats don't linger until TTL.
	ReleaseSeats(ctx context.Context, showID, userID uuid.UUID, seats []string) error

	// HeldSeats lists all actively held seats for a show.
	HeldSeats(ctx context.Context, showID uuid.UUID) ([]string, error)

	// SeatsHeldByOthers filters the requested seats down to those held by a
	// different user.
	SeatsHeldByOthers(ctx context.Context, showID, userID uuid.UUID, seats []string) ([]string, error)
}

type seatHoldRepository struct {
	rdb *redis.Client
	log *zap.Logger
}

func NewSeatHoldRepository(rdb *redis.Client, log *zap.Logger) SeatHoldRepository {
	return &seatHoldRepository{
		rdb: rdb,
		log: log.With(zap.String("repository", "seat_hold")),
	}
}

// Keys:
//
//	holdseat:{show}:{seat}  -> "{user}:{hold}"    (SETEX, ownership + claim)
//	hold:{hold}             -> hash meta          (EXPIRE)
//	holds:show:{show}       -> zset seat->expiry  (cleaned on read)
const luaHoldSeats = `
-- KEYS[1] = show zset key
-- ARGV[1] = hold_id, ARGV[2] = user_id, ARGV[3] = show_id
-- ARGV[4] = ttl seconds, ARGV[5] = expiry unix, ARGV[6..] = seat labels
local ttl = tonumber(ARGV[4])
local expiry = tonumber(ARGV[5])

for i = 6, #ARGV do
    local seat_key = "holdseat:" .. ARGV[3] .. ":" .. ARGV[i]
    if redis.call("EXISTS", seat_key) == 1 then
        return {0, ARGV[i]}
    end
end

local hold_value = ARGV[2] .. ":" .. ARGV[1]
for i = 6, #ARGV do
    local seat_key = "holdseat:" .. ARGV[3] .. ":" .. ARGV[i]
    redis.call("SETEX", seat_key, ttl, hold_value)
    redis.call("ZADD", KEYS[1], expiry, ARGV[i])
end

local hold_key = "hold:" .. ARGV[1]
redis.call("HSET", hold_key,
    "user_id", ARGV[2],
    "show_id", ARGV[3],
    "seats", table.concat(ARGV, ",", 6, #ARGV)
)
redis.call("EXPIRE", hold_key, ttl)

return {1, "ok"}
`

const luaReleaseHold = `
-- KEYS[1] = hold key
-- ARGV[1] = user_id
local meta = redis.call("HGETALL", KEYS[1])
if #meta == 0 then
    return {0, "not_found"}
end

local user_id, show_id, seats
for i = 1, #meta, 2 do
    if meta[i] == "user_id" then user_id = meta[i + 1] end
    if meta[i] == "show_id" then show_id = meta[i + 1] end
    if meta[i] == "seats" then seats = meta[i + 1] end
end

if user_id ~= ARGV[1] then
    return {0, "not_owner"}
end

local zset_key = "holds:show:" .. show_id
for seat in string.gmatch(seats, "[^,]+") do
    redis.call("DEL", "holdseat:" .. show_id .. ":" .. seat)
    redis.call("ZREM", zset_key, seat)
end
redis.call("DEL", KEYS[1])

return {1, "ok"}
`

var (
	holdSeatsScript   = redis.NewScript(luaHoldSeats)
	releaseHoldScript = redis.NewScript(luaReleaseHold)
)

func (r *seatHoldRepository) HoldSeats(ctx context.Context, showID, userID uuid.UUID, seats []string, ttl time.Duration) (*SeatHold, string, error) {
	holdID := uuid.New().String()
	expiresAt := time.Now().Add(ttl)

	args := make([]any, 0, 5+len(seats))
	args = append(args,
		holdID,
		userID.String(),
		showID.String(),
		int(ttl.Seconds()),
		expiresAt.Unix(),
	)
	for _, seat := range seats {
		args = append(args, seat)
	}

	result, err := holdSeatsScript.Run(ctx, r.rdb, []string{showZSetKey(showID)}, args...).Slice()
	if err != nil {
		r.log.Error("Failed to hold seats",
			zap.Error(err),
			zap.String("show_id", showID.String()),
			zap.String("user_id", userID.String()),
		)
		return nil, "", fmt.Errorf("hold seats for show %s: %w", showID.String(), err)
	}

	ok, detail, err := parseScriptResult(result)
	if err != nil {
		return nil, "", fmt.Errorf("hold seats for show %s: %w", showID.String(), err)
	}
	if !ok {
		return nil, detail, nil
	}

	return &SeatHold{
		ID:        holdID,
		UserID:    userID,
		ShowID:    showID,
		Seats:     seats,
		ExpiresAt: expiresAt,
	}, "", nil
}

func (r *seatHoldRepository) ReleaseHold(ctx context.Context, holdID string, userID uuid.UUID) (bool, error) {
	result, err := releaseHoldScript.Run(ctx, r.rdb, []string{"hold:" + holdID}, userID.String()).Slice()
	if err != nil {
		r.log.Error("Failed to release hold",
			zap.Error(err),
			zap.String("hold_id", holdID),
		)
		return false, fmt.Errorf("release hold %s: %w", holdID, err)
	}

	ok, _, err := parseScriptResult(result)
	if err != nil {
		return false, fmt.Errorf("release hold %s: %w", holdID, err)
	}

	return ok, nil
}

func (r *seatHoldRepository) ReleaseSeats(ctx context.Context, showID, userID uuid.UUID, seats []string) error {
	prefix := userID.String() + ":"

	for _, seat := range seats {
		key := holdSeatKey(showID, seat)

		value, err := r.rdb.Get(ctx, key).Result()
		if err == redis.Nil {
			continue
		}
		if err != nil {
			return fmt.Errorf("release seat %s for show %s: %w", seat, showID.String(), err)
		}
		if !strings.HasPrefix(value, prefix) {
			continue
		}

		if err := r.rdb.Del(ctx, key).Err(); err != nil {
			return fmt.Errorf("release seat %s for show %s: %w", seat, showID.String(), err)
		}
		if err := r.rdb.ZRem(ctx, showZSetKey(showID), seat).Err(); err != nil {
			return fmt.Errorf("release seat %s for show %s: %w", seat, showID.String(), err)
		}
	}

	return nil
}

func (r *seatHoldRepository) HeldSeats(ctx context.Context, showID uuid.UUID) ([]string, error) {
	key := showZSetKey(showID)
	now := time.Now().Unix()

	// drop expired members before reading
	if err := r.rdb.ZRemRangeByScore(ctx, key, "-inf", fmt.Sprintf("%d", now)).Err(); err != nil {
		return nil, fmt.Errorf("prune held seats for show %s: %w", showID.String(), err)
	}

	seats, err := r.rdb.ZRange(ctx, key, 0, -1).Result()
	if err != nil {
		r.log.Error("Failed to list held seats",
			zap.Error(err),
			zap.String("show_id", showID.String()),
		)
		return nil, fmt.Errorf("list held seats for show %s: %w", showID.String(), err)
	}

	return seats, nil
}

func (r *seatHoldRepository) SeatsHeldByOthers(ctx context.Context, showID, userID uuid.UUID, seats []string) ([]string, error) {
	if len(seats) == 0 {
		return nil, nil
	}

	keys := make([]string, len(seats))
	for i, seat := range seats {
		keys[i] = holdSeatKey(showID, seat)
	}

	values, err := r.rdb.MGet(ctx, keys...).Result()
	if err != nil {
		r.log.Error("Failed to check held seats",
			zap.Error(err),
			zap.String("show_id", showID.String()),
		)
		return nil, fmt.Errorf("check held seats for show %s: %w", showID.String(), err)
	}

	prefix := userID.String() + ":"

	var contended []string
	for i, value := range values {
		str, ok := value.(string)
		if !ok || str == "" {
			continue
		}
		if !strings.HasPrefix(str, prefix) {
			contended = append(contended, seats[i])
		}
	}

	return contended, nil
}

// ==================== HELPERS ====================

func holdSeatKey(showID uuid.UUID, seat string) string {
	return fmt.Sprintf("holdseat:%s:%s", showID.String(), seat)
}

func showZSetKey(showID uuid.UUID) string {
	return "holds:show:" + showID.String()
}

func parseScriptResult(result []any) (bool, string, error) {
	if len(result) != 2 {
		return false, "", fmt.Errorf("unexpected script result: %v", result)
	}

	code, ok := result[0].(int64)
	if !ok {
		return false, "", fmt.Errorf("unexpected script result code: %v", result[0])
	}

	detail, _ := result[1].(string)
	return code == 1, detail, nil
}
