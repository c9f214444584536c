package tui

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/avolkov/snakeboard/internal/snake"
)

// Each board cell renders as two runes so the grid is roughly square
// in terminal aspect ratio.
const cellWidth = 2

var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	faintStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("236"))
	snakeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
	headStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Bold(true)
	foodStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	youStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Bold(true)
	scoreStyle   = lipgloss.NewStyle().Bold(true)
	overlayStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))

	boardStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("238"))
)

// View renders the session according to the game state.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var body string
	switch m.game.State() {
	case snake.StateIdle:
		body = m.viewIdle()
	case snake.StatePlaying, snake.StatePaused:
		body = m.viewBoard(false)
	case snake.StateDying:
		body = m.viewBoard(true)
	case snake.StateGameOver:
		body = m.viewGameOver()
	}

	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, body)
	}
	return body
}

func (m Model) viewIdle() string {
	parts := []string{
		titleStyle.Render("SNAKE"),
		dimStyle.Render(fmt.Sprintf("best score: %d", m.best)),
		"",
	}
	if board := m.renderStandings(); board != "" {
		parts = append(parts, board, "")
	}
	parts = append(parts,
		dimStyle.Render("enter to start"),
		m.help.View(m.keys),
	)
	return lipgloss.JoinVertical(lipgloss.Center, parts...)
}

func (m Model) viewBoard(dying bool) string {
	snap := m.game.Snapshot()

	hud := lipgloss.JoinHorizontal(lipgloss.Top,
		scoreStyle.Render(fmt.Sprintf("%d", snap.Score)),
		dimStyle.Render(fmt.Sprintf("   best %d", m.best)),
	)

	var board string
	if dying {
		board = renderDispersal(m.game.Plan(), m.game.DyingElapsed(), snap.Food)
	} else {
		board = renderGrid(snap)
	}

	parts := []string{hud, boardStyle.Render(board)}
	if snap.State == snake.StatePaused {
		parts = append(parts, overlayStyle.Render("paused"))
	} else {
		parts = append(parts, m.help.View(m.keys))
	}
	return lipgloss.JoinVertical(lipgloss.Center, parts...)
}

func (m Model) viewGameOver() string {
	score := m.game.Score()

	heading := "GAME OVER"
	if m.newBest {
		heading = "NEW BEST"
	}

	parts := []string{
		titleStyle.Render(heading),
		scoreStyle.Render(fmt.Sprintf("%d", score)),
		dimStyle.Render(fmt.Sprintf("best score: %d", m.best)),
		"",
	}
	if board := m.renderStandings(); board != "" {
		parts = append(parts, board, "")
	}
	parts = append(parts, dimStyle.Render("enter to restart"))
	return lipgloss.JoinVertical(lipgloss.Center, parts...)
}

// renderGrid draws the live board: snake head, body and food.
func renderGrid(snap snake.Snapshot) string {
	type cell int
	const (
		empty cell = iota
		head
		bodySeg
		food
	)

	var grid [snake.GridSize][snake.GridSize]cell
	for i, seg := range snap.Body {
		if i == 0 {
			grid[seg.Y][seg.X] = head
		} else {
			grid[seg.Y][seg.X] = bodySeg
		}
	}
	if grid[snap.Food.Y][snap.Food.X] == empty {
		grid[snap.Food.Y][snap.Food.X] = food
	}

	var sb strings.Builder
	for y := range snake.GridSize {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for x := range snake.GridSize {
			switch grid[y][x] {
			case head:
				sb.WriteString(headStyle.Render("██"))
			case bodySeg:
				sb.WriteString(snakeStyle.Render("██"))
			case food:
				sb.WriteString(foodStyle.Render("▓▓"))
			default:
				sb.WriteString(strings.Repeat(" ", cellWidth))
			}
		}
	}
	return sb.String()
}

// renderDispersal draws the death animation from the precomputed plan:
// each segment starts drifting after its stagger delay and decays
// through heavier shading as it travels; during the fade phase the
// whole field dims.
func renderDispersal(plan snake.DispersalPlan, elapsed time.Duration, food snake.Position) string {
	fading := elapsed > plan.Crumble+plan.Stagger

	glyphs := []string{"██", "▓▓", "▒▒", "░░"}

	var grid [snake.GridSize][snake.GridSize]string
	for _, b := range plan.Bursts {
		progress := 0.0
		if elapsed > b.Delay {
			progress = float64(elapsed-b.Delay) / float64(plan.Crumble)
			if progress > 1 {
				progress = 1
			}
		}

		x := b.From.X + int(math.Round(b.DX*progress))
		y := b.From.Y + int(math.Round(b.DY*progress))
		if x < 0 || x >= snake.GridSize || y < 0 || y >= snake.GridSize {
			continue
		}

		gi := int(progress * float64(len(glyphs)-1))
		if b.Rotation < 0 && gi < len(glyphs)-1 {
			gi++
		}
		grid[y][x] = glyphs[gi]
	}

	style := snakeStyle
	if fading {
		style = faintStyle
	}

	var sb strings.Builder
	for y := range snake.GridSize {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for x := range snake.GridSize {
			switch {
			case grid[y][x] != "":
				sb.WriteString(style.Render(grid[y][x]))
			case food.X == x && food.Y == y && !fading:
				sb.WriteString(dimStyle.Render("▓▓"))
			default:
				sb.WriteString(strings.Repeat(" ", cellWidth))
			}
		}
	}
	return sb.String()
}

// renderStandings draws the top-5 panel, highlighting the current
// player's nickname as YOU.
func (m Model) renderStandings() string {
	if len(m.entries) == 0 {
		return ""
	}

	nick := ""
	if m.client != nil {
		nick = m.client.Nick()
	}

	var rows []string
	for i, e := range m.entries {
		if i >= 5 {
			break
		}
		place := fmt.Sprintf("%02d", i+1)
		name := e.Nick
		style := dimStyle
		if nick != "" && e.Nick == nick {
			name = youPrefix(e.Nick) + "YOU"
			style = youStyle
		}
		rows = append(rows, fmt.Sprintf("%s  %s  %s",
			dimStyle.Render(place),
			style.Render(fmt.Sprintf("%-18s", name)),
			style.Render(fmt.Sprintf("%4d", e.Score)),
		))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// youPrefix keeps the numeric identity visible when replacing the
// suffix with YOU: "12.34.56.ABC" → "12.34.56.".
func youPrefix(nick string) string {
	parts := strings.Split(nick, ".")
	if len(parts) >= 3 {
		return strings.Join(parts[:3], ".") + "."
	}
	return nick + "."
}
