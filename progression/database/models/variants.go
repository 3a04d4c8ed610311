package models

import (
	"database/sql/driver"
	"fmt"
	"strings"
)

// QuestStatus is the lifecycle state of a quest.
type QuestStatus uint8

const (
	QuestPending QuestStatus = iota + 1
	QuestInProgress
	QuestCompleted
	QuestExpired
)

func (s QuestStatus) String() string {
	switch s {
	case QuestPending:
		return "PENDING"
	case QuestInProgress:
		return "IN_PROGRESS"
	case QuestCompleted:
		return "COMPLETED"
	case QuestExpired:
		return "EXPIRED"
	default:
		return fmt.Sprintf("QuestStatus(%d)", uint8(s))
	}
}

func ParseQuestStatus(v string) (QuestStatus, error) {
	switch strings.ToUpper(v) {
	case "PENDING":
		return QuestPending, nil
	case "IN_PROGRESS":
		return QuestInProgress, nil
	case "COMPLETED":
		return QuestCompleted, nil
	case "EXPIRED":
		return QuestExpired, nil
	}
	return 0, fmt.Errorf("unknown quest status %q", v)
}

// IsTerminal reports whether no transition leaves s.
func (s QuestStatus) IsTerminal() bool {
	switch s {
	case QuestCompleted, QuestExpired:
		return true
	case QuestPending, QuestInProgress:
		return false
	default:
		return true
	}
}

// CanTransitionTo encodes PENDING -> IN_PROGRESS -> {COMPLETED, EXPIRED}.
func (s QuestStatus) CanTransitionTo(next QuestStatus) bool {
	switch s {
	case QuestPending:
		return next == QuestInProgress
	case QuestInProgress:
		return next == QuestCompleted || next == QuestExpired
	case QuestCompleted, QuestExpired:
		return false
	default:
		return false
	}
}

func (s QuestStatus) Value() (driver.Value, error) {
	if _, err := ParseQuestStatus(s.String()); err != nil {
		return nil, err
	}
	return s.String(), nil
}

func (s *QuestStatus) Scan(src any) error {
	v, err := scanString(src)
	if err != nil {
		return err
	}
	parsed, err := ParseQuestStatus(v)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

func (s QuestStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *QuestStatus) UnmarshalText(b []byte) error {
	parsed, err := ParseQuestStatus(string(b))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// QuestType selects how a quest is generated and completed.
type QuestType uint8

const (
	QuestStandard QuestType = iota + 1
	QuestComboBreaker
	QuestCooperative
)

func (t QuestType) String() string {
	switch t {
	case QuestStandard:
		return "STANDARD"
	case QuestComboBreaker:
		return "COMBO_BREAKER"
	case QuestCooperative:
		return "COOPERATIVE"
	default:
		return fmt.Sprintf("QuestType(%d)", uint8(t))
	}
}

func ParseQuestType(v string) (QuestType, error) {
	switch strings.ToUpper(v) {
	case "STANDARD":
		return QuestStandard, nil
	case "COMBO_BREAKER":
		return QuestComboBreaker, nil
	case "COOPERATIVE":
		return QuestCooperative, nil
	}
	return 0, fmt.Errorf("unknown quest type %q", v)
}

// RequiresConfirmation reports whether completion needs a second user.
func (t QuestType) RequiresConfirmation() bool {
	switch t {
	case QuestCooperative:
		return true
	case QuestStandard, QuestComboBreaker:
		return false
	default:
		return false
	}
}

func (t QuestType) Value() (driver.Value, error) {
	if _, err := ParseQuestType(t.String()); err != nil {
		return nil, err
	}
	return t.String(), nil
}

func (t *QuestType) Scan(src any) error {
	v, err := scanString(src)
	if err != nil {
		return err
	}
	parsed, err := ParseQuestType(v)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

func (t QuestType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *QuestType) UnmarshalText(b []byte) error {
	parsed, err := ParseQuestType(string(b))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// MaturityLevel is the ordered per-strength rank.
type MaturityLevel uint8

const (
	MaturityNovice MaturityLevel = iota + 1
	MaturityDeveloping
	MaturityProficient
	MaturityMastery
)

// MaxMaturityLevel is the final rank.
const MaxMaturityLevel = MaturityMastery

func (l MaturityLevel) String() string {
	switch l {
	case MaturityNovice:
		return "NOVICE"
	case MaturityDeveloping:
		return "DEVELOPING"
	case MaturityProficient:
		return "PROFICIENT"
	case MaturityMastery:
		return "MASTERY"
	default:
		return fmt.Sprintf("MaturityLevel(%d)", uint8(l))
	}
}

func ParseMaturityLevel(v string) (MaturityLevel, error) {
	switch strings.ToUpper(v) {
	case "NOVICE":
		return MaturityNovice, nil
	case "DEVELOPING":
		return MaturityDeveloping, nil
	case "PROFICIENT":
		return MaturityProficient, nil
	case "MASTERY":
		return MaturityMastery, nil
	}
	return 0, fmt.Errorf("unknown maturity level %q", v)
}

// Next returns the following rank; ok is false at the final rank.
func (l MaturityLevel) Next() (MaturityLevel, bool) {
	switch l {
	case MaturityNovice:
		return MaturityDeveloping, true
	case MaturityDeveloping:
		return MaturityProficient, true
	case MaturityProficient:
		return MaturityMastery, true
	case MaturityMastery:
		return l, false
	default:
		return l, false
	}
}

func (l MaturityLevel) Value() (driver.Value, error) {
	if _, err := ParseMaturityLevel(l.String()); err != nil {
		return nil, err
	}
	return l.String(), nil
}

func (l *MaturityLevel) Scan(src any) error {
	v, err := scanString(src)
	if err != nil {
		return err
	}
	parsed, err := ParseMaturityLevel(v)
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

func (l MaturityLevel) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

func (l *MaturityLevel) UnmarshalText(b []byte) error {
	parsed, err := ParseMaturityLevel(string(b))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

// BadgeTier decides the XP bonus of a badge.
type BadgeTier uint8

const (
	TierBronze BadgeTier = iota + 1
	TierSilver
	TierGold
	TierPlatinum
)

func (t BadgeTier) String() string {
	switch t {
	case TierBronze:
		return "bronze"
	case TierSilver:
		return "silver"
	case TierGold:
		return "gold"
	case TierPlatinum:
		return "platinum"
	default:
		return fmt.Sprintf("BadgeTier(%d)", uint8(t))
	}
}

func ParseBadgeTier(v string) (BadgeTier, error) {
	switch strings.ToLower(v) {
	case "bronze":
		return TierBronze, nil
	case "silver":
		return TierSilver, nil
	case "gold":
		return TierGold, nil
	case "platinum":
		return TierPlatinum, nil
	}
	return 0, fmt.Errorf("unknown badge tier %q", v)
}

func (t BadgeTier) Value() (driver.Value, error) {
	if _, err := ParseBadgeTier(t.String()); err != nil {
		return nil, err
	}
	return t.String(), nil
}

func (t *BadgeTier) Scan(src any) error {
	v, err := scanString(src)
	if err != nil {
		return err
	}
	parsed, err := ParseBadgeTier(v)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

func (t BadgeTier) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *BadgeTier) UnmarshalText(b []byte) error {
	parsed, err := ParseBadgeTier(string(b))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// XPSource names where a ledger credit came from.
type XPSource string

const (
	SourceAssessment       XPSource = "assessment_completed"
	SourceFeedbackGiven    XPSource = "feedback_given"
	SourceFeedbackReceived XPSource = "feedback_received"
	SourceQuest            XPSource = "quest_completed"
	SourceBadge            XPSource = "badge_unlocked"
)

func ParseXPSource(v string) (XPSource, error) {
	switch s := XPSource(strings.ToLower(v)); s {
	case SourceAssessment, SourceFeedbackGiven, SourceFeedbackReceived, SourceQuest, SourceBadge:
		return s, nil
	}
	return "", fmt.Errorf("unknown xp source %q", v)
}

func scanString(src any) (string, error) {
	switch v := src.(type) {
	case string:
		return v, nil
	case []byte:
		return string(v), nil
	case nil:
		return "", fmt.Errorf("cannot scan NULL into variant")
	default:
		return "", fmt.Errorf("cannot scan %T into variant", src)
	}
}
