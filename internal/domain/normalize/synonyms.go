package normalize

// Ordered source-field names per canonical field. The first key present in
// a row wins, so more specific labels go first.
var (
	nameKeys     = []string{"Player name", "player name", "name", "Name", "player", "Player", "playerName"}
	positionKeys = []string{"position", "Position", "pos", "POS"}

	gamesKeys          = []string{"Games", "games", "G", "gamesPlayed", "GP"}
	atBatsKeys         = []string{"At-bat", "At-bats", "at bats", "atBats", "AB"}
	runsKeys           = []string{"Runs", "runs", "R"}
	hitsKeys           = []string{"Hits", "hits", "H"}
	doublesKeys        = []string{"Double (2B)", "Doubles", "doubles", "2B"}
	triplesKeys        = []string{"third baseman", "Triple (3B)", "Triples", "triples", "3B"}
	homeRunsKeys       = []string{"home run", "Home runs", "homeRuns", "home runs", "HR"}
	rbiKeys            = []string{"run batted in", "Runs batted in", "rbi", "RBI"}
	walksKeys          = []string{"a walk", "Walks", "walks", "Base on balls", "BB"}
	strikeoutsKeys     = []string{"Strikeouts", "strikeouts", "SO", "K"}
	stolenBasesKeys    = []string{"stolen base", "Stolen bases", "stolenBases", "SB"}
	caughtStealingKeys = []string{"Caught stealing", "caughtStealing", "CS"}
	averageKeys        = []string{"AVG", "avg", "Batting average", "battingAverage", "BA"}
	onBaseKeys         = []string{"On-base Percentage", "On-base percentage", "onBasePercentage", "obp", "OBP"}
	sluggingKeys       = []string{"Slugging Percentage", "Slugging percentage", "sluggingPercentage", "slg", "SLG"}
	opsKeys            = []string{"On-base Plus Slugging", "On-base plus slugging", "onBasePlusSlugging", "ops", "OPS"}
)
