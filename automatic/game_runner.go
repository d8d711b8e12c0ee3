// Package automatic plays computer vs computer games. Both players always
// make the top scoring play, so many games run the move generator at volume.
package automatic

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"lukechampine.com/frand"

	"github.com/wordsmithgame/wordsmith/board"
	"github.com/wordsmithgame/wordsmith/cgp"
	"github.com/wordsmithgame/wordsmith/config"
	"github.com/wordsmithgame/wordsmith/gaddag"
	"github.com/wordsmithgame/wordsmith/move"
	"github.com/wordsmithgame/wordsmith/movegen"
	"github.com/wordsmithgame/wordsmith/tilemapping"
)

// MaxScorelessTurns ends the game once this many turns in a row score
// nothing.
const MaxScorelessTurns = 6

// GameResult is what is left of a finished game.
type GameResult struct {
	ID        string
	Scores    [2]int
	First     int
	Turns     int
	Positions int
}

// GameRunner is the master struct here for the automatic game logic.
type GameRunner struct {
	gaddag  *gaddag.Gaddag
	movegen *movegen.GordonGenerator
	board   *board.GameBoard
	bag     *tilemapping.Bag
	racks   [2]*tilemapping.Rack
	scores  [2]int

	uid            string
	turn           int
	first          int
	onturn         int
	scorelessTurns int
	playing        bool
	// positions is the number of times moves were generated.
	positions int

	logchan chan<- string
}

// NewGameRunner just instantiates and initializes a game runner. If logchan
// is not nil, a CSV line is sent to it for every turn.
func NewGameRunner(gd *gaddag.Gaddag, logchan chan<- string, cfg *config.Config) *GameRunner {
	gen := movegen.NewGordonGenerator(gd)
	gen.SetPlayRecorder(movegen.TopPlayOnlyRecorder)
	gen.SetMaxNodes(cfg.GetInt(config.ConfigMaxSearchNodes))
	return &GameRunner{
		gaddag:  gd,
		movegen: gen,
		logchan: logchan,
	}
}

// StartGame starts a game with a random bag and a random first player.
func (r *GameRunner) StartGame() {
	r.start(tilemapping.NewBag(), frand.Intn(2))
}

// StartGameWithSeed starts a game that plays out the same way every time
// for the same seed.
func (r *GameRunner) StartGameWithSeed(seed [32]byte) {
	r.start(tilemapping.NewSeededBag(seed), int(seed[31]&1))
}

func (r *GameRunner) start(bag *tilemapping.Bag, first int) {
	r.board = board.NewBoard()
	r.bag = bag
	r.scores = [2]int{}
	r.uid = uuid.NewString()
	r.turn = 0
	r.first = first
	r.onturn = first
	r.scorelessTurns = 0
	r.positions = 0
	for i := range r.racks {
		r.racks[i] = tilemapping.NewRack()
		r.bag.Refill(r.racks[i])
	}
	r.playing = true
	log.Debug().Str("gameID", r.uid).Int("first", first).Msg("game-started")
}

func (r *GameRunner) Playing() bool {
	return r.playing
}

func (r *GameRunner) Board() *board.GameBoard {
	return r.board
}

func (r *GameRunner) Bag() *tilemapping.Bag {
	return r.bag
}

func (r *GameRunner) RackFor(playerIdx int) *tilemapping.Rack {
	return r.racks[playerIdx]
}

func (r *GameRunner) PointsFor(playerIdx int) int {
	return r.scores[playerIdx]
}

func (r *GameRunner) PlayerOnTurn() int {
	return r.onturn
}

func (r *GameRunner) Turn() int {
	return r.turn
}

func (r *GameRunner) Uid() string {
	return r.uid
}

// Result summarizes the game.
func (r *GameRunner) Result() GameResult {
	return GameResult{
		ID:        r.uid,
		Scores:    r.scores,
		First:     r.first,
		Turns:     r.turn,
		Positions: r.positions,
	}
}

// Position is the current position, the player on turn first.
func (r *GameRunner) Position() *cgp.Position {
	other := 1 - r.onturn
	pos := &cgp.Position{
		Board:          r.board,
		Racks:          [2]*tilemapping.Rack{r.racks[r.onturn], r.racks[other]},
		Scores:         [2]int{r.scores[r.onturn], r.scores[other]},
		ScorelessTurns: r.scorelessTurns,
		Opcodes:        map[string]string{"gid": r.uid},
	}
	if lex := r.gaddag.LexiconName(); lex != "" {
		pos.Opcodes["lex"] = lex
	}
	return pos
}

// genBestStaticTurn returns the top scoring play for the player on turn.
// Without one, the whole rack is exchanged if the bag allows it; otherwise
// the player passes.
func (r *GameRunner) genBestStaticTurn() *move.Move {
	rack := r.racks[r.onturn]
	plays := r.movegen.GenAll(r.board, rack)
	r.positions++
	if len(plays) > 0 {
		best := plays[0]
		leave, err := tilemapping.Leave(rack.Tiles(), best.RackTiles(), false)
		if err == nil {
			best.SetLeave(leave)
		}
		return best
	}
	tiles := append([]tilemapping.Tile{}, rack.Tiles()...)
	if r.bag.TilesRemaining() >= tilemapping.RackTileLimit && len(tiles) > 0 {
		return move.NewExchangeMove(tiles, nil)
	}
	return move.NewPassMove(tiles)
}

// PlayBestStaticTurn generates the best static move for the player on turn
// and plays it on the board.
func (r *GameRunner) PlayBestStaticTurn() error {
	if !r.playing {
		return fmt.Errorf("game %v is over", r.uid)
	}
	playerIdx := r.onturn
	rack := r.racks[playerIdx]
	// save rackLetters for logging.
	rackLetters := rack.String()
	tilesRemaining := r.bag.TilesRemaining()

	bestPlay := r.genBestStaticTurn()
	switch bestPlay.Action() {
	case move.MoveTypePlay:
		if err := bestPlay.Apply(r.board, rack); err != nil {
			return err
		}
		r.scores[playerIdx] += bestPlay.Score()
		r.bag.Refill(rack)
	case move.MoveTypeExchange:
		exchanged := make([]tilemapping.Tile, 0, bestPlay.TilesPlayed())
		for _, pt := range bestPlay.Tiles() {
			exchanged = append(exchanged, pt.Tile)
		}
		drawn, err := r.bag.Exchange(exchanged)
		if err != nil {
			return err
		}
		for _, t := range exchanged {
			rack.RemoveTile(t)
		}
		for _, t := range drawn {
			rack.AddTile(t)
		}
	}
	if bestPlay.Score() > 0 {
		r.scorelessTurns = 0
	} else {
		r.scorelessTurns++
	}

	if r.logchan != nil {
		r.logchan <- fmt.Sprintf("p%v,%v,%v,%v,%v,%v,%v,%v,%v,%v\n",
			playerIdx+1,
			r.uid,
			r.turn,
			rackLetters,
			bestPlay.ShortDescription(),
			bestPlay.Score(),
			r.scores[playerIdx],
			bestPlay.TilesPlayed(),
			bestPlay.LeaveString(),
			tilesRemaining)
	}

	r.turn++
	r.onturn = 1 - r.onturn
	r.maybeEndGame(playerIdx)
	return nil
}

func (r *GameRunner) maybeEndGame(lastPlayer int) {
	other := 1 - lastPlayer
	switch {
	case r.racks[lastPlayer].IsEmpty():
		// Went out; gets double the value of the other rack.
		r.scores[lastPlayer] += 2 * r.racks[other].ScoreOn()
		r.playing = false
	case r.scorelessTurns >= MaxScorelessTurns:
		for i := range r.racks {
			r.scores[i] -= r.racks[i].ScoreOn()
		}
		r.playing = false
	}
	if !r.playing {
		log.Debug().Str("gameID", r.uid).Int("turns", r.turn).
			Stringer("cgp", r.Position()).
			Msgf("Game over. Score: %v - %v", r.scores[0], r.scores[1])
	}
}

// PlayFullStatic plays out the game to the end using best static turns.
// Cancelling ctx stops the game between turns.
func (r *GameRunner) PlayFullStatic(ctx context.Context) error {
	for r.playing {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := r.PlayBestStaticTurn(); err != nil {
			return err
		}
	}
	return nil
}
