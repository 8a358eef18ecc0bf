// arena-cli is an interactive terminal client for the arena wallet server.
// It talks to the HTTP API; the server keeps the keys.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/brainink/arena/internal/model"

	"github.com/pterm/pterm"
	"github.com/pterm/pterm/putils"
)

type cli struct {
	baseURL string
	client  *http.Client
}

func main() {
	baseURL := flag.String("server", "http://localhost:8080", "arena server base URL")
	flag.Parse()

	title, _ := pterm.DefaultBigText.WithLetters(
		putils.LettersFromStringWithStyle("A", pterm.FgLightMagenta.ToStyle()),
		putils.LettersFromStringWithStyle("rena", pterm.FgDarkGray.ToStyle()),
	).Srender()
	pterm.Print(title)
	pterm.Info.Printfln("Server: %s", *baseURL)
	pterm.Println()

	c := &cli{
		baseURL: *baseURL,
		client:  &http.Client{Timeout: 5 * time.Minute},
	}

	for {
		choice, _ := pterm.DefaultInteractiveSelect.WithOptions([]string{
			"Wallet balance",
			"List tournaments",
			"Create tournament",
			"Join tournament",
			"Submit score",
			"Transaction history",
			"Quit",
		}).Show("What would you like to do?")

		switch choice {
		case "Wallet balance":
			c.balance()
		case "List tournaments":
			c.listTournaments()
		case "Create tournament":
			c.createTournament()
		case "Join tournament":
			c.joinTournament()
		case "Submit score":
			c.submitScore()
		case "Transaction history":
			c.history()
		case "Quit":
			pterm.Info.Println("Bye")
			return
		}
		pterm.Println()
	}
}

func (c *cli) balance() {
	var resp model.BalanceResponse
	if !c.get("/wallet/balance", &resp) {
		return
	}
	pterm.DefaultTable.WithData(pterm.TableData{
		{"Address", resp.Address},
		{"Network", resp.Network},
		{"INK", resp.INK},
		{"ETH", resp.ETH},
		{"ETH/USD", resp.Rate},
	}).Render()
}

func (c *cli) listTournaments() {
	var tournaments []model.Tournament
	if !c.get("/tournaments", &tournaments) {
		return
	}
	if len(tournaments) == 0 {
		pterm.Info.Println("No active tournaments")
		return
	}
	rows := pterm.TableData{{"ID", "Name", "Entry fee", "Players", "Prize pool", "State"}}
	for _, t := range tournaments {
		rows = append(rows, []string{
			strconv.FormatUint(t.ID, 10),
			t.Name,
			t.EntryFee + " INK",
			fmt.Sprintf("%d/%d", t.CurrentParticipants, t.MaxParticipants),
			t.PrizePool + " INK",
			string(t.State),
		})
	}
	pterm.DefaultTable.WithHasHeader().WithData(rows).Render()
}

func (c *cli) createTournament() {
	name, _ := pterm.DefaultInteractiveTextInput.Show("Tournament name")
	fee, _ := pterm.DefaultInteractiveTextInput.WithDefaultValue("10").Show("Entry fee (INK)")
	maxStr, _ := pterm.DefaultInteractiveTextInput.WithDefaultValue("8").Show("Max participants")
	durStr, _ := pterm.DefaultInteractiveTextInput.WithDefaultValue("24").Show("Duration (hours)")

	maxParticipants, err := strconv.ParseUint(maxStr, 10, 32)
	if err != nil {
		pterm.Error.Println("invalid max participants")
		return
	}
	duration, err := strconv.ParseUint(durStr, 10, 32)
	if err != nil {
		pterm.Error.Println("invalid duration")
		return
	}

	var resp model.CreateTournamentResponse
	ok := c.post("/tournaments", model.CreateTournamentRequest{
		Name:            name,
		EntryFee:        fee,
		MaxParticipants: uint32(maxParticipants),
		DurationHours:   uint32(duration),
	}, &resp)
	if !ok {
		return
	}
	pterm.Success.Printfln("Tournament %d created (tx %s)", resp.TournamentID, resp.TxID)
}

func (c *cli) joinTournament() {
	id, ok := c.askID()
	if !ok {
		return
	}
	var resp model.JoinResponse
	if !c.post(fmt.Sprintf("/tournaments/%d/join", id), nil, &resp) {
		return
	}
	switch resp.Status {
	case model.JoinStatusJoined:
		if resp.ApproveTx != "" {
			pterm.Info.Printfln("Entry fee approved (tx %s)", resp.ApproveTx)
		}
		pterm.Success.Printfln("Joined tournament %d (tx %s)", id, resp.TxID)
	case model.JoinStatusAlreadyJoined:
		pterm.Info.Printfln("Already a participant. %s", resp.NextStep)
	}
}

func (c *cli) submitScore() {
	id, ok := c.askID()
	if !ok {
		return
	}
	scoreStr, _ := pterm.DefaultInteractiveTextInput.Show("Score")
	score, err := strconv.ParseUint(scoreStr, 10, 64)
	if err != nil {
		pterm.Error.Println("invalid score")
		return
	}
	msStr, _ := pterm.DefaultInteractiveTextInput.WithDefaultValue("0").Show("Completion time (ms)")
	completion, err := strconv.ParseUint(msStr, 10, 64)
	if err != nil {
		pterm.Error.Println("invalid completion time")
		return
	}

	var resp model.SubmitScoreResponse
	if !c.post(fmt.Sprintf("/tournaments/%d/score", id), model.SubmitScoreRequest{
		Score: score, CompletionTimeMs: completion,
	}, &resp) {
		return
	}
	pterm.Success.Printfln("Score submitted (tx %s)", resp.TxID)
}

func (c *cli) history() {
	var resp model.HistoryResponse
	if !c.get("/wallet/transactions", &resp) {
		return
	}
	if len(resp.Transactions) == 0 {
		pterm.Info.Println("No transactions yet")
		return
	}
	rows := pterm.TableData{{"Time", "Type", "Tournament", "Amount", "Status", "Tx"}}
	for _, tx := range resp.Transactions {
		rows = append(rows, []string{
			tx.Timestamp.Format("2006-01-02 15:04:05"),
			string(tx.Type),
			strconv.FormatUint(tx.TournamentID, 10),
			tx.Amount,
			string(tx.Status),
			tx.TxHash,
		})
	}
	pterm.DefaultTable.WithHasHeader().WithData(rows).Render()
}

func (c *cli) askID() (uint64, bool) {
	idStr, _ := pterm.DefaultInteractiveTextInput.Show("Tournament id")
	id, err := strconv.ParseUint(idStr, 10, 64)
	if err != nil {
		pterm.Error.Println("invalid tournament id")
		return 0, false
	}
	return id, true
}

func (c *cli) get(path string, out interface{}) bool {
	spinner, _ := pterm.DefaultSpinner.Start("Fetching " + path)
	resp, err := c.client.Get(c.baseURL + path)
	return c.finish(spinner, resp, err, out)
}

func (c *cli) post(path string, body, out interface{}) bool {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			pterm.Error.Println(err.Error())
			return false
		}
	}
	spinner, _ := pterm.DefaultSpinner.Start("Waiting for confirmation")
	resp, err := c.client.Post(c.baseURL+path, "application/json", &buf)
	return c.finish(spinner, resp, err, out)
}

func (c *cli) finish(spinner *pterm.SpinnerPrinter, resp *http.Response, err error, out interface{}) bool {
	if err != nil {
		spinner.Fail(err.Error())
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var apiErr model.ErrorResponse
		if json.NewDecoder(resp.Body).Decode(&apiErr) == nil && apiErr.Error != "" {
			spinner.Fail(apiErr.Error)
			if apiErr.NextStep != "" {
				pterm.Info.Println(apiErr.NextStep)
			}
		} else {
			spinner.Fail(resp.Status)
		}
		return false
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			spinner.Fail("bad response: " + err.Error())
			return false
		}
	}
	spinner.Success()
	return true
}
