package sentiment

import (
	"context"
	"math"
	"strings"

	"github.com/ppiankov/sentistream/internal/model"
)

const (
	// normalizationAlpha flattens the summed valence into [-1,1].
	normalizationAlpha = 15.0

	// negationScalar dampens and flips a valence preceded by a negation.
	negationScalar = -0.74

	// boosterIncrement is the valence contribution of an intensifier.
	boosterIncrement = 0.293

	// exclamationIncrement is the emphasis added per trailing "!", capped
	// at four marks.
	exclamationIncrement = 0.292
	maxExclamations      = 4

	// lookback is how many preceding tokens are scanned for boosters and
	// negations.
	lookback = 3
)

// LexicalEngine is the builtin rule-based scoring engine: a valence
// lexicon with negation, intensifier, and exclamation handling. It is a
// pure function of its input and never fails.
type LexicalEngine struct {
	valence   map[string]float64
	boosters  map[string]float64
	negations map[string]struct{}
}

// NewLexicalEngine creates the builtin engine with its embedded lexicon.
func NewLexicalEngine() *LexicalEngine {
	return &LexicalEngine{
		valence:   valenceLexicon,
		boosters:  boosterLexicon,
		negations: negationSet,
	}
}

// Name returns the engine name.
func (e *LexicalEngine) Name() string { return "lexical" }

// PolarityScores scores text. Tokens are matched against the valence
// lexicon after stripping the ! ? marks that survive normalization;
// exclamation marks amplify the total.
func (e *LexicalEngine) PolarityScores(_ context.Context, text string) (model.Scores, error) {
	tokens := strings.Fields(text)
	if len(tokens) == 0 {
		return model.Scores{}, nil
	}

	valences := make([]float64, len(tokens))
	for i, tok := range tokens {
		word := strings.Trim(tok, "!?")
		v, ok := e.valence[word]
		if !ok {
			continue
		}

		negated := false
		for j := 1; j <= lookback && i-j >= 0; j++ {
			prev := strings.Trim(tokens[i-j], "!?")
			if b, isBooster := e.boosters[prev]; isBooster {
				// Intensifiers further from the word contribute less.
				scalar := b * (1 - 0.05*float64(j-1))
				if v < 0 {
					scalar = -scalar
				}
				v += scalar
			}
			if _, isNegation := e.negations[prev]; isNegation {
				negated = true
			}
		}
		if negated {
			v *= negationScalar
		}

		valences[i] = v
	}

	var sum float64
	for _, v := range valences {
		sum += v
	}

	// Exclamation emphasis aligns with the overall polarity.
	emphasis := float64(min(strings.Count(text, "!"), maxExclamations)) * exclamationIncrement
	if sum > 0 {
		sum += emphasis
	} else if sum < 0 {
		sum -= emphasis
	}

	compound := sum / math.Sqrt(sum*sum+normalizationAlpha)
	compound = math.Max(-1, math.Min(1, compound))

	var posSum, negSum, neuCount float64
	for _, v := range valences {
		switch {
		case v > 0:
			posSum += v + 1
		case v < 0:
			negSum += v - 1
		default:
			neuCount++
		}
	}
	if sum > 0 {
		posSum += emphasis
	} else if sum < 0 {
		negSum -= emphasis
	}

	total := posSum + math.Abs(negSum) + neuCount
	scores := model.Scores{Compound: round4(compound)}
	if total > 0 {
		scores.Pos = round3(math.Abs(posSum / total))
		scores.Neg = round3(math.Abs(negSum / total))
		scores.Neu = round3(math.Abs(neuCount / total))
	}

	return scores, nil
}

func round3(v float64) float64 { return math.Round(v*1000) / 1000 }
func round4(v float64) float64 { return math.Round(v*10000) / 10000 }

// valenceLexicon maps sentiment-laden words to mean valence ratings on
// the [-4,4] scale.
var valenceLexicon = map[string]float64{
	"abandoned": -1.9, "abuse": -3.2, "adorable": 2.2, "adore": 2.9,
	"afraid": -2.0, "aggressive": -1.2, "alarming": -1.6, "amazing": 2.8,
	"angry": -2.3, "annoyed": -1.8, "annoying": -1.9, "anxious": -1.0,
	"appalling": -2.8, "appreciate": 2.0, "awesome": 3.1, "awful": -2.0,
	"bad": -2.5, "beautiful": 2.9, "best": 3.2, "better": 1.9,
	"bless": 1.8, "boring": -1.3, "brilliant": 2.8, "broke": -1.5,
	"broken": -1.8, "calm": 1.3, "celebrate": 2.7, "charming": 2.3,
	"cheerful": 2.5, "comfortable": 1.6, "confused": -1.2, "crash": -1.6,
	"creative": 1.9, "cruel": -2.5, "cry": -2.1, "damaged": -1.7,
	"dead": -3.3, "defect": -1.8, "delight": 2.9, "delighted": 2.8,
	"depressed": -2.3, "despair": -2.8, "destroy": -2.6, "dirty": -1.6,
	"disappointed": -2.1, "disappointing": -2.2, "disaster": -3.1,
	"disgusting": -2.4, "dislike": -1.6, "dreadful": -2.6, "dull": -1.0,
	"easy": 1.5, "elegant": 2.1, "embarrassing": -1.7, "enjoy": 2.2,
	"enjoyed": 2.3, "error": -1.6, "evil": -3.4, "excellent": 2.7,
	"excited": 2.4, "exciting": 2.2, "fail": -2.5, "failed": -2.3,
	"failure": -2.6, "fantastic": 2.6, "fascinating": 2.2, "fault": -1.8,
	"favorite": 2.0, "favourite": 2.0, "fear": -2.2, "fine": 0.8,
	"flawless": 2.7, "fraud": -2.8, "free": 1.8, "fresh": 1.3,
	"friendly": 2.2, "frustrated": -2.1, "frustrating": -2.0, "fun": 2.3,
	"glad": 2.0, "gloomy": -1.6, "good": 1.9, "gorgeous": 2.6,
	"great": 3.1, "greatest": 3.2, "grief": -2.6, "happy": 2.7,
	"hate": -2.7, "hated": -2.8, "hell": -2.6, "helpful": 1.8,
	"honest": 2.3, "hope": 1.9, "hopeless": -2.5, "horrible": -2.5,
	"horrific": -3.0, "hurt": -2.0, "ignored": -1.5, "impressed": 2.1,
	"impressive": 2.3, "incredible": 2.6, "inspiring": 2.4,
	"interesting": 1.7, "joy": 2.8, "kill": -3.2, "kind": 2.4,
	"laugh": 2.2, "lie": -1.7, "like": 1.5, "liked": 1.7, "lonely": -1.8,
	"lose": -1.7, "loss": -1.7, "lost": -1.3, "love": 3.2, "loved": 2.9,
	"lovely": 2.8, "loving": 2.9, "lucky": 2.2, "mad": -2.2,
	"magnificent": 2.9, "mess": -1.5, "miserable": -2.7, "miss": -1.1,
	"mistake": -1.7, "nasty": -2.4, "neat": 1.7, "nice": 1.8,
	"outstanding": 3.0, "pain": -2.3, "painful": -2.3, "panic": -2.4,
	"peaceful": 2.2, "perfect": 2.7, "pleasant": 2.3, "please": 1.3,
	"pleased": 2.1, "poor": -1.9, "positive": 2.0, "pretty": 1.9,
	"problem": -1.7, "proud": 2.1, "rage": -2.7, "regret": -1.9,
	"reject": -1.9, "rejected": -2.0, "relaxed": 1.8, "relief": 1.9,
	"rotten": -2.4, "rude": -2.0, "sad": -2.1, "satisfied": 1.9,
	"scared": -2.2, "scary": -2.2, "shame": -2.1, "shocking": -1.8,
	"sick": -2.0, "slow": -0.8, "smart": 1.9, "smile": 2.3,
	"sorrow": -2.4, "sorry": -0.3, "stress": -1.9, "strong": 1.9,
	"stunning": 2.6, "stupid": -2.4, "succeed": 2.3, "success": 2.7,
	"successful": 2.6, "suck": -2.0, "sucks": -2.0,
	"superb": 2.9, "support": 1.7, "sweet": 2.0, "terrible": -2.1,
	"terrific": 2.7, "thank": 1.9, "thanks": 1.9, "tragedy": -3.0,
	"tragic": -2.8, "trouble": -1.8, "trust": 2.1, "ugly": -2.3,
	"unhappy": -2.2, "upset": -2.0, "useless": -1.9, "valuable": 2.1,
	"victory": 2.6, "vile": -2.8, "war": -2.9, "warm": 1.6, "weak": -1.6,
	"welcome": 2.0, "win": 2.8, "winner": 2.8, "won": 2.7,
	"wonderful": 2.7, "worried": -1.9, "worry": -1.9, "worse": -2.1,
	"worst": -3.1, "worthless": -2.4, "wow": 2.8, "wrong": -2.1,
}

// boosterLexicon maps intensifiers to their scalar contribution.
// Negative entries are dampeners.
var boosterLexicon = map[string]float64{
	"absolutely":   boosterIncrement,
	"completely":   boosterIncrement,
	"extremely":    boosterIncrement,
	"incredibly":   boosterIncrement,
	"really":       boosterIncrement,
	"remarkably":   boosterIncrement,
	"so":           boosterIncrement,
	"totally":      boosterIncrement,
	"utterly":      boosterIncrement,
	"very":         boosterIncrement,
	"barely":       -boosterIncrement,
	"hardly":       -boosterIncrement,
	"marginally":   -boosterIncrement,
	"occasionally": -boosterIncrement,
	"slightly":     -boosterIncrement,
	"somewhat":     -boosterIncrement,
}

// negationSet holds negation tokens recognized within the lookback
// window.
var negationSet = map[string]struct{}{
	"not": {}, "no": {}, "never": {}, "none": {}, "neither": {},
	"nor": {}, "cannot": {}, "can't": {}, "don't": {}, "won't": {},
	"isn't": {}, "wasn't": {}, "aren't": {}, "weren't": {},
	"didn't": {}, "doesn't": {}, "couldn't": {}, "wouldn't": {},
	"shouldn't": {}, "ain't": {}, "without": {},
}
