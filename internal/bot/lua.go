package bot

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/charmbracelet/log"
	lua "github.com/yuin/gopher-lua"

	"github.com/lox/blackjackforbots/internal/game"
)

// ErrScript indicates a Lua strategy script that failed to load or lacks an
// action function.
var ErrScript = errors.New("bot: invalid lua script")

// LuaAgent delegates decisions to a Lua script. The script must define
//
//	function action(obs) ... return "hit" end
//
// and may define bet(bank) returning a stake. Without bet the agent stakes
// its bet fraction. A global random() returns a float in [0, 1) drawn from
// the game's rng.
//
// obs carries total, soft, pair, cards (list of rank strings), upcard, legal
// (list of action names), bank, bet, hand_index and from_split.
//
// A LuaAgent is not safe for concurrent use.
type LuaAgent struct {
	state       *lua.LState
	betFraction float64
	logger      *log.Logger
}

// NewLuaAgent loads src into a fresh Lua state.
func NewLuaAgent(src string, rng *rand.Rand, betFraction float64, logger *log.Logger) (*LuaAgent, error) {
	L := lua.NewState()
	L.SetGlobal("random", L.NewFunction(func(L *lua.LState) int {
		L.Push(lua.LNumber(rng.Float64()))
		return 1
	}))

	if err := L.DoString(src); err != nil {
		L.Close()
		return nil, fmt.Errorf("%w: %v", ErrScript, err)
	}
	if L.GetGlobal("action").Type() != lua.LTFunction {
		L.Close()
		return nil, fmt.Errorf("%w: no action function", ErrScript)
	}

	return &LuaAgent{state: L, betFraction: betFraction, logger: prefixed(logger, "lua")}, nil
}

// Close releases the Lua state.
func (a *LuaAgent) Close() {
	a.state.Close()
}

// Bet calls the script's bet function when present. A script error or a
// non-numeric result stakes 0, which the table rejects.
func (a *LuaAgent) Bet(bank int) int {
	fn := a.state.GetGlobal("bet")
	if fn.Type() != lua.LTFunction {
		return FractionalBet(a.betFraction, bank)
	}

	ret, err := a.call(fn, lua.LNumber(bank))
	if err != nil {
		a.logger.Error("Script bet failed", "error", err)
		return 0
	}
	n, ok := ret.(lua.LNumber)
	if !ok {
		a.logger.Error("Script bet returned a non-number", "value", ret.String())
		return 0
	}
	return int(n)
}

// Action calls the script's action function. Errors yield NoAction, which
// the table rejects.
func (a *LuaAgent) Action(obs game.Observation) game.Action {
	ret, err := a.call(a.state.GetGlobal("action"), a.observation(obs))
	if err != nil {
		a.logger.Error("Script action failed", "error", err)
		return game.NoAction
	}
	action, err := game.ParseAction(lua.LVAsString(ret))
	if err != nil {
		a.logger.Error("Script returned an unknown action", "value", ret.String())
		return game.NoAction
	}
	a.logger.Debug("Script decision", "hand", obs.Hand, "upcard", obs.DealerUpcard, "action", action)
	return action
}

func (a *LuaAgent) call(fn lua.LValue, args ...lua.LValue) (lua.LValue, error) {
	L := a.state
	if err := L.CallByParam(lua.P{Fn: fn, NRet: 1, Protect: true}, args...); err != nil {
		return lua.LNil, err
	}
	ret := L.Get(-1)
	L.Pop(1)
	return ret, nil
}

func (a *LuaAgent) observation(obs game.Observation) *lua.LTable {
	L := a.state
	t := L.NewTable()
	t.RawSetString("total", lua.LNumber(obs.Hand.Total()))
	t.RawSetString("soft", lua.LBool(obs.Hand.Soft()))
	t.RawSetString("pair", lua.LBool(obs.Hand.IsPair()))
	t.RawSetString("upcard", lua.LString(obs.DealerUpcard.String()))
	t.RawSetString("bank", lua.LNumber(obs.Bank))
	t.RawSetString("bet", lua.LNumber(obs.Bet))
	t.RawSetString("hand_index", lua.LNumber(obs.HandIndex))
	t.RawSetString("from_split", lua.LBool(obs.Hand.FromSplit()))

	cards := L.NewTable()
	for _, r := range obs.Hand.Cards() {
		cards.Append(lua.LString(r.String()))
	}
	t.RawSetString("cards", cards)

	legal := L.NewTable()
	for _, act := range obs.Legal.List() {
		legal.Append(lua.LString(act.String()))
	}
	t.RawSetString("legal", legal)
	return t
}
