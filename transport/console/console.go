package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/playdice/farkle-backend/internal/apperror"
	"github.com/playdice/farkle-backend/internal/entity"
	"github.com/playdice/farkle-backend/internal/farkle"
)

const welcomeMessage = `
Welcome to Farkle! The rules are simple. You roll 6 dice and try to get
scoring combinations.

Scoring combinations are as follows:
1's: 100 points each
5's: 50 points each
3 of a kind: 1000 points for 3 ones, 200 for 3 twos, 300 for 3 threes, etc.
4 of a kind: 2000 points
5 of a kind: 3000 points
6 of a kind: 5000 points
3 pairs: 1500 points
straight: 1500 points
2 triplets: 2500 points

If you'd like to keep the 1st, 3rd, and 5th dice, you would type '135'.
You can roll as many times as you want, but if you
don't get any scoring combinations, you lose all your points for that turn.
You can bank your points at any time by entering 'y' instead of picking dice.
Reach 10,000 points to win!
Good luck!
`

// Shell is the interactive stdin/stdout front end. It implements the
// core's input and display ports; all input validation and
// re-prompting happens here, so the round machine only ever sees
// clean selections.
type Shell struct {
	logger  *slog.Logger
	scanner *bufio.Scanner
	out     io.Writer
	dice    farkle.DieSource
}

func New(logger *slog.Logger, in io.Reader, out io.Writer, dice farkle.DieSource) *Shell {
	return &Shell{
		logger:  logger,
		scanner: bufio.NewScanner(in),
		out:     out,
		dice:    dice,
	}
}

// Run plays whole games of Farkle until the player wins or quits.
func (that *Shell) Run() error {
	log := that.logger.With("component", "console")

	fmt.Fprint(that.out, welcomeMessage, "\n")

	totalScore := 0
	for totalScore < entity.TargetScore {
		round := farkle.NewRound(that.dice, that, that)

		roundScore, err := round.Play()
		if errors.Is(err, apperror.ErrQuitRequested) {
			fmt.Fprintln(that.out, "Thanks for playing!")
			return nil
		}

		if err != nil {
			return fmt.Errorf("round failed: %w", err)
		}

		totalScore += roundScore
		fmt.Fprintf(that.out, "Round score: %d\n", roundScore)
		fmt.Fprintf(that.out, "Total score: %d\n\n", totalScore)
	}

	log.Info("game won", "total", totalScore)
	fmt.Fprintln(that.out, "You win! Thanks for playing!")

	return nil
}

// PromptKeep reads the dice positions to keep, re-prompting until the
// input is valid: unique digits in [1, poolSize]. An empty line keeps
// nothing, 'q' requests a quit.
func (that *Shell) PromptKeep(poolSize int) ([]int, error) {
	for {
		fmt.Fprintf(that.out, "Enter dice to keep (1-%d):\n", poolSize)

		line, err := that.readLine()
		if err != nil {
			return nil, err
		}

		if strings.Contains(line, "q") {
			return nil, apperror.ErrQuitRequested
		}

		positions, ok := parsePositions(line, poolSize, that.out)
		if !ok {
			continue
		}

		return positions, nil
	}
}

// PromptBank reads the banking decision: 'y' banks, 'q' quits,
// anything else rolls again.
func (that *Shell) PromptBank() (bool, error) {
	fmt.Fprintln(that.out, "Would you like to keep this score?")

	line, err := that.readLine()
	if err != nil {
		return false, err
	}

	if strings.Contains(line, "q") {
		return false, apperror.ErrQuitRequested
	}

	return strings.Contains(line, "y"), nil
}

func (that *Shell) ShowRoll(dice []int) {
	fmt.Fprintf(that.out, "Dice: %v\n", dice)
}

func (that *Shell) ShowKept(dice []int, score int) {
	fmt.Fprintf(that.out, "You kept: %v (worth %d)\n", dice, score)
}

func (that *Shell) ShowHotDice() {
	fmt.Fprintln(that.out, "You got all keepers! Good job!")
}

func (that *Shell) ShowRoundScore(score int) {
	fmt.Fprintf(that.out, "Your score this round is %d\n", score)
}

func (that *Shell) ShowBust() {
	fmt.Fprintln(that.out, "No scoring dice.\nYour turn is over.")
}

func (that *Shell) readLine() (string, error) {
	if !that.scanner.Scan() {
		if err := that.scanner.Err(); err != nil {
			return "", fmt.Errorf("failed to read input: %w", err)
		}

		// EOF on stdin is a quit.
		return "", apperror.ErrQuitRequested
	}

	return strings.TrimSpace(that.scanner.Text()), nil
}

func parsePositions(line string, poolSize int, out io.Writer) ([]int, bool) {
	seen := make(map[rune]bool, len(line))
	positions := make([]int, 0, len(line))
	valid := true

	for _, c := range line {
		if c < '1' || c > rune('0'+poolSize) {
			fmt.Fprintf(out, "Invalid input %c. Try again.\n", c)
			valid = false
			continue
		}

		if seen[c] {
			fmt.Fprintln(out, "You can't keep the same die twice.")
			valid = false
			continue
		}

		seen[c] = true
		positions = append(positions, int(c-'0'))
	}

	if !valid {
		return nil, false
	}

	return positions, true
}
