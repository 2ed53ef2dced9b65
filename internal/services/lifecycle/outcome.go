package lifecycle

// Outcome is the structured result of every lifecycle operation.
// Exactly one message code is produced per player-facing action —
// silent failures are bugs. Fields carry the interpolation values the
// presentation layer needs to render the message.
type Outcome struct {
	Success bool
	Code    string
	Fields  map[string]any
}

func succeed(code string, fields map[string]any) *Outcome {
	return &Outcome{Success: true, Code: code, Fields: fields}
}

func deny(code string, fields map[string]any) *Outcome {
	return &Outcome{Success: false, Code: code, Fields: fields}
}

// Message codes produced by the lifecycle state machine.
const (
	// Guard refusals.
	MsgUnknownCharacter = "character.unknown"
	MsgCharacterDead    = "character.dead"
	MsgCharacterCaptive = "character.captive"
	MsgNoDaysLeft       = "character.noDays"
	MsgNoFunds          = "character.noFunds"
	MsgNotAPlayer       = "character.notPlayer"
	MsgWrongLocation    = "character.wrongLocation"

	// Death and succession.
	MsgDeath       = "death.notice"
	MsgInheritance = "death.inheritance"
	MsgEscheat     = "death.escheat"
	MsgRespawn     = "death.respawn"
	MsgAlreadyDead = "death.alreadyDead"

	// Marriage.
	MsgMarriageProposed        = "marriage.proposed"
	MsgMarriageCompleted       = "marriage.completed"
	MsgMarriageCancelled       = "marriage.cancelled"
	MsgMarriagePostponed       = "marriage.postponed"
	MsgMarriageBrideIneligible = "marriage.brideIneligible"
	MsgMarriageGroomIneligible = "marriage.groomIneligible"
	MsgMarriageNoFamily        = "marriage.noFamily"
	MsgMarriageIncest          = "marriage.incest"
	MsgMarriageDoubleProposal  = "marriage.doubleProposal"
	MsgMarriageUnderage        = "marriage.underage"

	// Pregnancy and birth.
	MsgPregnancySuccess = "pregnancy.success"
	MsgPregnancyFailed  = "pregnancy.failed"
	MsgNotMarried       = "pregnancy.notMarried"
	MsgBirth            = "birth.child"
	MsgBirthStillborn   = "birth.stillborn"
	MsgBirthMotherDied  = "birth.motherDied"
	MsgBirthBothLost    = "birth.bothLost"

	// Covert operations. The five branches of the shared two-stage
	// resolution, per attempt kind.
	MsgKidnapSuccessDetected = "kidnap.successDetected"
	MsgKidnapSuccess         = "kidnap.success"
	MsgKidnapFailKilled      = "kidnap.failKilled"
	MsgKidnapFailDetected    = "kidnap.failDetected"
	MsgKidnapFail            = "kidnap.fail"
	MsgSpySuccessDetected    = "spy.successDetected"
	MsgSpySuccess            = "spy.success"
	MsgSpyFailKilled         = "spy.failKilled"
	MsgSpyFailDetected       = "spy.failDetected"
	MsgSpyFail               = "spy.fail"

	// Captivity management.
	MsgRansomDemanded  = "ransom.demanded"
	MsgCaptiveReleased = "captive.released"
	MsgCaptiveExecuted = "captive.executed"
	MsgNotYourCaptive  = "captive.notYours"
	MsgAlreadyCaptive  = "captive.alreadyHeld"

	// Titles, rosters, movement.
	MsgTitleGranted    = "title.granted"
	MsgTitleNotHeld    = "title.notHeld"
	MsgHired           = "hire.accepted"
	MsgOfferRejected   = "hire.rejected"
	MsgOfferTooLow     = "hire.offerTooLow"
	MsgNotHireable     = "hire.notHireable"
	MsgFired           = "hire.fired"
	MsgNotYourEmployee = "hire.notYourEmployee"
	MsgMoved           = "move.arrived"
	MsgRouteSet        = "move.routeSet"
	MsgUnknownPlace    = "move.unknownPlace"
)
