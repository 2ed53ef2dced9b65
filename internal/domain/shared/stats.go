package shared

// Sex of a character. Several stat formulas branch on it.
type Sex string

const (
	SexMale   Sex = "male"
	SexFemale Sex = "female"
)

// Stat names a modifier channel that trait effects feed into.
type Stat string

const (
	StatBattle      Stat = "BATTLE"
	StatSiege       Stat = "SIEGE"
	StatStealth     Stat = "STEALTH"
	StatPerception  Stat = "PERCEPTION"
	StatTime        Stat = "TIME"
	StatFiefLoy     Stat = "FIEFLOY"
	StatFiefExpense Stat = "FIEFEXPENSE"
	StatDeath       Stat = "DEATH"
	StatNPCHire     Stat = "NPCHIRE"
)
