package postgres

import (
	"database/sql"
	"time"
)

type userTableModel struct {
	ID           int64     `db:"id"`
	PublicID     string    `db:"public_id"`
	Email        string    `db:"email"`
	Name         string    `db:"name"`
	PasswordHash string    `db:"password_hash"`
	Role         string    `db:"role"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

type userInsertModel struct {
	PublicID     string    `db:"public_id"`
	Email        string    `db:"email"`
	Name         string    `db:"name"`
	PasswordHash string    `db:"password_hash"`
	Role         string    `db:"role"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

// userUpsertRow adds the xmax probe telling an insert from a conflict update.
type userUpsertRow struct {
	userTableModel
	Inserted bool `db:"inserted"`
}

type clubTableModel struct {
	ID           int64     `db:"id"`
	PublicID     string    `db:"public_id"`
	Name         string    `db:"name"`
	Slug         string    `db:"slug"`
	BrandingJSON []byte    `db:"branding_json"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

type clubInsertModel struct {
	PublicID     string    `db:"public_id"`
	Name         string    `db:"name"`
	Slug         string    `db:"slug"`
	BrandingJSON *string   `db:"branding_json"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

type clubMemberTableModel struct {
	ClubID    string    `db:"club_public_id"`
	UserID    string    `db:"user_public_id"`
	Role      string    `db:"role"`
	CreatedAt time.Time `db:"created_at"`
}

type membershipRow struct {
	clubTableModel
	MemberRole string `db:"member_role"`
}

type templateTableModel struct {
	ID                int64      `db:"id"`
	PublicID          string     `db:"public_id"`
	Name              string     `db:"name"`
	GameType          string     `db:"game_type"`
	Sport             string     `db:"sport"`
	Status            string     `db:"status"`
	ActivationOpenAt  *time.Time `db:"activation_open_at"`
	ActivationCloseAt *time.Time `db:"activation_close_at"`
	JoinOpenAt        *time.Time `db:"join_open_at"`
	JoinCloseAt       *time.Time `db:"join_close_at"`
	StartAt           time.Time  `db:"start_at"`
	RulesJSON         []byte     `db:"rules_json"`
	CreatedAt         time.Time  `db:"created_at"`
	UpdatedAt         time.Time  `db:"updated_at"`
}

type templateInsertModel struct {
	PublicID          string     `db:"public_id"`
	Name              string     `db:"name"`
	GameType          string     `db:"game_type"`
	Sport             string     `db:"sport"`
	Status            string     `db:"status"`
	ActivationOpenAt  *time.Time `db:"activation_open_at"`
	ActivationCloseAt *time.Time `db:"activation_close_at"`
	JoinOpenAt        *time.Time `db:"join_open_at"`
	JoinCloseAt       *time.Time `db:"join_close_at"`
	StartAt           time.Time  `db:"start_at"`
	RulesJSON         *string    `db:"rules_json"`
	CreatedAt         time.Time  `db:"created_at"`
	UpdatedAt         time.Time  `db:"updated_at"`
}

type competitionTableModel struct {
	ID            int64          `db:"id"`
	PublicID      string         `db:"public_id"`
	ClubID        string         `db:"club_public_id"`
	TemplateID    sql.NullString `db:"template_public_id"`
	Name          string         `db:"name"`
	Sport         string         `db:"sport"`
	Status        string         `db:"status"`
	EntryFeeCents int64          `db:"entry_fee_cents"`
	Currency      string         `db:"currency"`
	RulesJSON     []byte         `db:"rules_json"`
	StartRoundAt  *time.Time     `db:"start_round_at"`
	CreatedAt     time.Time      `db:"created_at"`
	UpdatedAt     time.Time      `db:"updated_at"`
}

type competitionInsertModel struct {
	PublicID      string     `db:"public_id"`
	ClubID        string     `db:"club_public_id"`
	TemplateID    *string    `db:"template_public_id"`
	Name          string     `db:"name"`
	Sport         string     `db:"sport"`
	Status        string     `db:"status"`
	EntryFeeCents int64      `db:"entry_fee_cents"`
	Currency      string     `db:"currency"`
	RulesJSON     *string    `db:"rules_json"`
	StartRoundAt  *time.Time `db:"start_round_at"`
	CreatedAt     time.Time  `db:"created_at"`
	UpdatedAt     time.Time  `db:"updated_at"`
}

type entryTableModel struct {
	ID            int64     `db:"id"`
	PublicID      string    `db:"public_id"`
	CompetitionID string    `db:"competition_public_id"`
	UserID        string    `db:"user_public_id"`
	Status        string    `db:"status"`
	CreatedAt     time.Time `db:"created_at"`
}

type entryInsertModel struct {
	PublicID      string    `db:"public_id"`
	CompetitionID string    `db:"competition_public_id"`
	UserID        string    `db:"user_public_id"`
	Status        string    `db:"status"`
	CreatedAt     time.Time `db:"created_at"`
}

type roundTableModel struct {
	ID             int64      `db:"id"`
	PublicID       string     `db:"public_id"`
	CompetitionID  string     `db:"competition_public_id"`
	Number         int        `db:"round_number"`
	Status         string     `db:"status"`
	PickDeadlineAt *time.Time `db:"pick_deadline_at"`
}

type fixtureWithRoundRow struct {
	FixtureID           string     `db:"fixture_public_id"`
	HomeTeamID          string     `db:"home_team_id"`
	AwayTeamID          string     `db:"away_team_id"`
	KickoffAt           *time.Time `db:"kickoff_at"`
	FixtureStatus       string     `db:"fixture_status"`
	RoundID             string     `db:"round_public_id"`
	RoundCompetitionID  string     `db:"competition_public_id"`
	RoundNumber         int        `db:"round_number"`
	RoundStatus         string     `db:"round_status"`
	RoundPickDeadlineAt *time.Time `db:"pick_deadline_at"`
}

type pickTableModel struct {
	ID            int64     `db:"id"`
	PublicID      string    `db:"public_id"`
	UserID        string    `db:"user_public_id"`
	CompetitionID string    `db:"competition_public_id"`
	FixtureID     string    `db:"fixture_public_id"`
	TeamPicked    string    `db:"team_picked"`
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`
}

type pickInsertModel struct {
	PublicID      string    `db:"public_id"`
	UserID        string    `db:"user_public_id"`
	CompetitionID string    `db:"competition_public_id"`
	FixtureID     string    `db:"fixture_public_id"`
	TeamPicked    string    `db:"team_picked"`
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`
}

type auditInsertModel struct {
	PublicID      string    `db:"public_id"`
	Action        string    `db:"action"`
	Outcome       string    `db:"outcome"`
	ActorUserID   *string   `db:"actor_user_public_id"`
	ClubID        *string   `db:"club_public_id"`
	CompetitionID *string   `db:"competition_public_id"`
	TemplateID    *string   `db:"template_public_id"`
	Reason        *string   `db:"reason"`
	OccurredAt    time.Time `db:"occurred_at"`
}
