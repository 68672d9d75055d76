// Package errors defines the engine's typed error values.
package errors

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an error that did not originate in the engine.
	CodeUnknown Code = "UNKNOWN"

	// Intent legality
	CodeInvalidPlayerID   Code = "INVALID_PLAYER_ID"
	CodeInactivePlayer    Code = "INACTIVE_PLAYER"
	CodeWrongPhase        Code = "WRONG_PHASE"
	CodeNoMoreActions     Code = "NO_MORE_ACTIONS"
	CodeNoMoreBuys        Code = "NO_MORE_BUYS"
	CodeNotEnoughResource Code = "NOT_ENOUGH_RESOURCE"
	CodeInvalidCardChoice Code = "INVALID_CARD_CHOICE"
	CodeEffectPending     Code = "EFFECT_PENDING"
	CodeGameOver          Code = "GAME_OVER"

	// Zones
	CodeCardNotFound    Code = "CARD_NOT_FOUND"
	CodeIndexOutOfRange Code = "INDEX_OUT_OF_RANGE"

	// Supply
	CodeNoMoreCards Code = "NO_MORE_CARDS"
	CodeUnknownCard Code = "UNKNOWN_CARD"
	CodeNoSuchPile  Code = "NO_SUCH_PILE"

	// Setup
	CodeInvalidConfig  Code = "INVALID_CONFIG"
	CodeInvalidCatalog Code = "INVALID_CATALOG"
)

// Retriable reports whether the same intent may succeed later without the
// caller changing it. Only a pending decision clears by itself once answered.
func (c Code) Retriable() bool {
	return c == CodeEffectPending
}
