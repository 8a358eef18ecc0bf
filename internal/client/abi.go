package client

import (
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

// erc20ABI is the subset of the INK token interface this service calls.
const erc20ABI = `[
	{"type":"function","name":"balanceOf","stateMutability":"view","inputs":[{"name":"account","type":"address"}],"outputs":[{"name":"","type":"uint256"}]},
	{"type":"function","name":"allowance","stateMutability":"view","inputs":[{"name":"owner","type":"address"},{"name":"spender","type":"address"}],"outputs":[{"name":"","type":"uint256"}]},
	{"type":"function","name":"approve","stateMutability":"nonpayable","inputs":[{"name":"spender","type":"address"},{"name":"amount","type":"uint256"}],"outputs":[{"name":"","type":"bool"}]},
	{"type":"function","name":"decimals","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint8"}]}
]`

// tournamentABI is the TournamentManager contract interface.
const tournamentManagerABI = `[
	{"type":"function","name":"createTournament","stateMutability":"nonpayable","inputs":[{"name":"_name","type":"string"},{"name":"_entryFee","type":"uint256"},{"name":"_maxParticipants","type":"uint256"},{"name":"_duration","type":"uint256"}],"outputs":[]},
	{"type":"function","name":"joinTournament","stateMutability":"nonpayable","inputs":[{"name":"_tournamentId","type":"uint256"}],"outputs":[]},
	{"type":"function","name":"submitScore","stateMutability":"nonpayable","inputs":[{"name":"_tournamentId","type":"uint256"},{"name":"_score","type":"uint256"},{"name":"_completionTime","type":"uint256"}],"outputs":[]},
	{"type":"function","name":"getTournament","stateMutability":"view","inputs":[{"name":"_tournamentId","type":"uint256"}],"outputs":[{"name":"","type":"tuple","components":[
		{"name":"id","type":"uint256"},
		{"name":"name","type":"string"},
		{"name":"creator","type":"address"},
		{"name":"entryFee","type":"uint256"},
		{"name":"maxParticipants","type":"uint256"},
		{"name":"currentParticipants","type":"uint256"},
		{"name":"prizePool","type":"uint256"},
		{"name":"startTime","type":"uint256"},
		{"name":"endTime","type":"uint256"},
		{"name":"isActive","type":"bool"},
		{"name":"isCompleted","type":"bool"},
		{"name":"participants","type":"address[]"},
		{"name":"winner","type":"address"},
		{"name":"vrfRequestId","type":"uint256"}
	]}]},
	{"type":"function","name":"getParticipant","stateMutability":"view","inputs":[{"name":"_tournamentId","type":"uint256"},{"name":"_player","type":"address"}],"outputs":[{"name":"","type":"tuple","components":[
		{"name":"player","type":"address"},
		{"name":"score","type":"uint256"},
		{"name":"completionTime","type":"uint256"},
		{"name":"hasSubmitted","type":"bool"}
	]}]},
	{"type":"function","name":"getActiveTournaments","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint256[]"}]},
	{"type":"event","name":"TournamentCreated","inputs":[{"name":"tournamentId","type":"uint256","indexed":true},{"name":"name","type":"string","indexed":false},{"name":"creator","type":"address","indexed":false},{"name":"entryFee","type":"uint256","indexed":false}],"anonymous":false},
	{"type":"event","name":"PlayerJoined","inputs":[{"name":"tournamentId","type":"uint256","indexed":true},{"name":"player","type":"address","indexed":false}],"anonymous":false},
	{"type":"event","name":"ScoreSubmitted","inputs":[{"name":"tournamentId","type":"uint256","indexed":true},{"name":"player","type":"address","indexed":false},{"name":"score","type":"uint256","indexed":false},{"name":"completionTime","type":"uint256","indexed":false}],"anonymous":false},
	{"type":"event","name":"TournamentEnded","inputs":[{"name":"tournamentId","type":"uint256","indexed":true},{"name":"winner","type":"address","indexed":false},{"name":"prize","type":"uint256","indexed":false}],"anonymous":false}
]`

var (
	parsedERC20ABI      = mustParseABI(erc20ABI)
	parsedTournamentABI = mustParseABI(tournamentManagerABI)
)

func mustParseABI(raw string) abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(raw))
	if err != nil {
		panic("invalid embedded ABI: " + err.Error())
	}
	return parsed
}
