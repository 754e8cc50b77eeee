package sentiment

// Valences follow the usual -4..+4 intensity scale, tuned toward market
// headlines. Financial terms borrow from the Loughran-McDonald lists.
var lexicon = map[string]float64{
	// general positive
	"good": 1.9, "great": 3.1, "excellent": 3.2, "best": 3.2, "better": 1.9,
	"positive": 2.3, "strong": 2.3, "stronger": 2.2, "strongest": 2.5,
	"solid": 1.7, "robust": 1.8, "success": 2.7, "successful": 2.8,
	"win": 2.8, "wins": 2.7, "winning": 2.4, "won": 2.7, "happy": 2.7,
	"optimistic": 2.0, "optimism": 2.0, "confident": 2.2, "confidence": 2.0,
	"impressive": 2.7, "remarkable": 2.5, "exceptional": 2.8, "superior": 2.3,
	"favorable": 2.0, "favourable": 2.0, "benefit": 1.8, "benefits": 1.7,
	"opportunity": 1.8, "opportunities": 1.8, "improve": 1.9, "improved": 2.1,
	"improves": 1.9, "improvement": 2.0, "upbeat": 2.1, "innovative": 1.9,
	"leader": 1.4, "leading": 1.3, "progress": 1.8, "valuable": 2.1,

	// market positive
	"surge": 2.4, "surges": 2.4, "surged": 2.4, "surging": 2.3,
	"soar": 2.6, "soars": 2.6, "soared": 2.6, "soaring": 2.5,
	"rally": 2.2, "rallies": 2.2, "rallied": 2.2, "jump": 1.8, "jumps": 1.8,
	"jumped": 1.8, "gain": 2.0, "gains": 2.0, "gained": 2.0, "rise": 1.5,
	"rises": 1.5, "rose": 1.5, "rising": 1.4, "climb": 1.4, "climbs": 1.4,
	"beat": 1.9, "beats": 1.9, "upgrade": 2.2, "upgrades": 2.2, "upgraded": 2.2,
	"bullish": 2.6, "outperform": 2.2, "outperforms": 2.2, "outperformed": 2.2,
	"record": 1.5, "profit": 1.9, "profits": 1.9, "profitable": 2.2,
	"growth": 1.9, "grow": 1.6, "grows": 1.6, "grew": 1.6, "boost": 1.9,
	"boosts": 1.9, "boosted": 1.9, "expand": 1.3, "expands": 1.3,
	"expansion": 1.4, "dividend": 1.2, "buyback": 1.4, "approval": 1.9,
	"approved": 1.8, "recovery": 1.6, "recovers": 1.6, "rebound": 1.7,
	"rebounds": 1.7, "upside": 1.6, "breakout": 1.6, "moon": 1.8,
	"multibagger": 2.4, "undervalued": 1.5, "accumulate": 1.1,

	// general negative
	"bad": -2.5, "worse": -2.1, "worst": -3.1, "poor": -2.1, "terrible": -2.1,
	"awful": -2.0, "negative": -2.3, "weak": -1.9, "weaker": -1.9,
	"weakness": -1.9, "fail": -2.3, "fails": -2.3, "failed": -2.3,
	"failure": -2.3, "fear": -2.2, "fears": -2.2, "worry": -1.9,
	"worries": -1.9, "worried": -1.9, "concern": -1.4, "concerns": -1.4,
	"problem": -1.7, "problems": -1.7, "trouble": -1.7, "crisis": -3.1,
	"disappoint": -2.2, "disappoints": -2.2, "disappointing": -2.2,
	"difficult": -1.5, "uncertain": -1.2, "uncertainty": -1.4, "risk": -1.1,
	"risks": -1.1, "risky": -1.4, "adverse": -1.9, "damage": -2.2,
	"warning": -1.4, "warns": -1.4, "threat": -2.4, "scam": -2.9,
	"panic": -2.3, "dump": -1.6, "avoid": -1.2,

	// market negative
	"plunge": -2.6, "plunges": -2.6, "plunged": -2.6, "plunging": -2.6,
	"crash": -2.9, "crashes": -2.9, "crashed": -2.9, "slump": -2.2,
	"slumps": -2.2, "slumped": -2.2, "tumble": -2.2, "tumbles": -2.2,
	"tumbled": -2.2, "fall": -1.5, "falls": -1.5, "fell": -1.5,
	"falling": -1.5, "drop": -1.4, "drops": -1.4, "dropped": -1.4,
	"decline": -1.6, "declines": -1.6, "declined": -1.6, "slide": -1.5,
	"slides": -1.5, "sink": -1.8, "sinks": -1.8, "sank": -1.8,
	"loss": -2.0, "losses": -2.1, "lose": -1.9, "loses": -1.9, "lost": -1.8,
	"downgrade": -2.2, "downgrades": -2.2, "downgraded": -2.2,
	"bearish": -2.6, "underperform": -2.0, "miss": -1.6, "misses": -1.7,
	"missed": -1.7, "fraud": -3.2, "probe": -1.5, "lawsuit": -1.8,
	"penalty": -1.8, "fine": -0.8, "fined": -1.8, "default": -2.1,
	"bankruptcy": -3.0, "bankrupt": -3.0, "layoffs": -2.1, "layoff": -2.1,
	"cut": -1.1, "cuts": -1.1, "selloff": -2.0, "debt": -1.0,
	"downturn": -2.0, "recession": -2.5, "slowdown": -1.7, "headwind": -1.4,
	"headwinds": -1.4, "volatile": -1.1, "volatility": -1.0, "overvalued": -1.5,
	"impairment": -1.8, "writedown": -1.9, "resigns": -1.2, "raid": -2.0,
}

// boosters scale the next sentiment word up or down.
var boosters = map[string]float64{
	"very": boostIncr, "extremely": boostIncr, "highly": boostIncr,
	"hugely": boostIncr, "massive": boostIncr, "massively": boostIncr,
	"sharply": boostIncr, "significantly": boostIncr, "strongly": boostIncr,
	"really": boostIncr, "most": boostIncr, "big": boostIncr,
	"slightly": boostDecr, "marginally": boostDecr, "somewhat": boostDecr,
	"barely": boostDecr, "modestly": boostDecr, "little": boostDecr,
}

var negations = map[string]bool{
	"not": true, "no": true, "never": true, "none": true, "nor": true,
	"without": true, "neither": true, "cannot": true, "nothing": true,
	"isn't": true, "aren't": true, "wasn't": true, "weren't": true,
	"don't": true, "doesn't": true, "didn't": true, "won't": true,
	"can't": true, "couldn't": true, "shouldn't": true, "hasn't": true,
	"haven't": true, "hadn't": true, "isnt": true, "dont": true,
	"doesnt": true, "didnt": true, "cant": true, "wont": true,
}
