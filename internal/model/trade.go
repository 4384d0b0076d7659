package model

import (
	"fmt"
	"strconv"
	"time"

	json "github.com/goccy/go-json"
	"github.com/shopspring/decimal"
)

// Trade sides as seen by the caller, derived from the upstream action fields.
const (
	TradeSideBuy     = "buy"
	TradeSideSell    = "sell"
	TradeSideSelf    = "self" // both sides of the trade were the caller's orders
	TradeSideUnknown = "unknown"
)

// Market roles in a matched trade.
const (
	RoleMaker   = "maker" // resting order matched by an incoming order
	RoleTaker   = "taker" // incoming order that triggered the match
	RoleBoth    = "both"  // self trade
	RoleUnknown = "unknown"
)

// DeriveTradeSides maps the upstream (action, your_action) pair to the
// normalized trade side and market role. action is the resting order's side,
// your_action the caller's side.
//
//	your_action  action  trade_side  market_role
//	both         any     self        both
//	bid          bid     buy         taker
//	bid          ask     buy         maker
//	ask          ask     sell        taker
//	ask          bid     sell        maker
//	other        any     unknown     unknown
func DeriveTradeSides(action, yourAction string) (tradeSide, marketRole string) {
	switch yourAction {
	case RoleBoth:
		return TradeSideSelf, RoleBoth
	case SideBid:
		if action == SideBid {
			return TradeSideBuy, RoleTaker
		}
		return TradeSideBuy, RoleMaker
	case SideAsk:
		if action == SideAsk {
			return TradeSideSell, RoleTaker
		}
		return TradeSideSell, RoleMaker
	default:
		return TradeSideUnknown, RoleUnknown
	}
}

// wireActions inverts DeriveTradeSides for round-tripping normalized records.
// For self trades the resting side is not recoverable and is emitted as
// "both"; unknown values emit empty fields.
func wireActions(tradeSide, marketRole string) (action, yourAction string) {
	switch tradeSide {
	case TradeSideSelf:
		return RoleBoth, RoleBoth
	case TradeSideBuy:
		yourAction = SideBid
	case TradeSideSell:
		yourAction = SideAsk
	default:
		return "", ""
	}
	if marketRole == RoleTaker {
		return yourAction, yourAction
	}
	if yourAction == SideBid {
		return SideAsk, yourAction
	}
	return SideBid, yourAction
}

// OrderResponse is the result of placing an order. An order id of zero means
// the order filled completely and nothing rests on the book.
type OrderResponse struct {
	FilledAmount   decimal.Decimal            `json:"filled_amount"`   // quantity filled immediately
	UnfilledAmount decimal.Decimal            `json:"unfilled_amount"` // quantity left resting
	OrderID        int64                      `json:"order_id"`
	Balances       map[string]decimal.Decimal `json:"balances"` // balances after the order
}

type orderResponseWire struct {
	Received decimal.Decimal            `json:"received"`
	Remains  decimal.Decimal            `json:"remains"`
	OrderID  flexInt                    `json:"order_id"`
	Funds    map[string]decimal.Decimal `json:"funds"`
}

// ParseOrderResponse normalizes a trade response body.
func ParseOrderResponse(data []byte) (OrderResponse, error) {
	var w orderResponseWire
	if err := json.Unmarshal(data, &w); err != nil {
		return OrderResponse{}, fmt.Errorf("order response: %w", err)
	}
	if w.Funds == nil {
		w.Funds = map[string]decimal.Decimal{}
	}
	return OrderResponse{
		FilledAmount:   w.Received,
		UnfilledAmount: w.Remains,
		OrderID:        int64(w.OrderID),
		Balances:       w.Funds,
	}, nil
}

// Wire converts the response back to its upstream representation.
func (r OrderResponse) Wire() ([]byte, error) {
	return json.Marshal(orderResponseWire{
		Received: r.FilledAmount,
		Remains:  r.UnfilledAmount,
		OrderID:  flexInt(r.OrderID),
		Funds:    r.Balances,
	})
}

// CancelOrderResponse is the result of cancelling an order.
type CancelOrderResponse struct {
	OrderID  int64                      `json:"order_id"`
	Balances map[string]decimal.Decimal `json:"balances"` // balances after the cancel
}

type cancelOrderWire struct {
	OrderID flexInt                    `json:"order_id"`
	Funds   map[string]decimal.Decimal `json:"funds"`
}

// ParseCancelOrderResponse normalizes a cancel_order response body.
func ParseCancelOrderResponse(data []byte) (CancelOrderResponse, error) {
	var w cancelOrderWire
	if err := json.Unmarshal(data, &w); err != nil {
		return CancelOrderResponse{}, fmt.Errorf("cancel response: %w", err)
	}
	if w.Funds == nil {
		w.Funds = map[string]decimal.Decimal{}
	}
	return CancelOrderResponse{OrderID: int64(w.OrderID), Balances: w.Funds}, nil
}

// Wire converts the response back to its upstream representation.
func (r CancelOrderResponse) Wire() ([]byte, error) {
	return json.Marshal(cancelOrderWire{OrderID: flexInt(r.OrderID), Funds: r.Balances})
}

// OpenOrder is one resting order on the book.
type OpenOrder struct {
	CurrencyPair string          `json:"currency_pair"`
	Side         string          `json:"order_type"` // "bid" or "ask"
	Price        decimal.Decimal `json:"price"`
	Quantity     decimal.Decimal `json:"quantity"`
	OrderTime    time.Time       `json:"order_time"`
}

// OpenOrderList maps order ids to resting orders.
type OpenOrderList struct {
	OpenOrders map[int64]OpenOrder `json:"open_orders"`
}

type openOrderItemWire struct {
	CurrencyPair string          `json:"currency_pair"`
	Action       string          `json:"action"`
	Price        decimal.Decimal `json:"price"`
	Amount       decimal.Decimal `json:"amount"`
	Timestamp    flexInt         `json:"timestamp"`
}

// ParseOpenOrders normalizes an active_orders response body. The wire shape
// is an object keyed by stringified order ids; keys that are not integers and
// entries that fail to coerce are dropped individually and reported in the
// skip list.
func ParseOpenOrders(data []byte) (OpenOrderList, []ParseSkip, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return OpenOrderList{}, nil, fmt.Errorf("open orders: %w", err)
	}

	list := OpenOrderList{OpenOrders: make(map[int64]OpenOrder, len(raw))}
	var skipped []ParseSkip
	for key, item := range raw {
		id, err := strconv.ParseInt(key, 10, 64)
		if err != nil {
			skipped = append(skipped, ParseSkip{Key: key, Reason: fmt.Errorf("non-integer id: %w", err)})
			continue
		}
		var w openOrderItemWire
		if err := json.Unmarshal(item, &w); err != nil {
			skipped = append(skipped, ParseSkip{Key: key, Reason: err})
			continue
		}
		list.OpenOrders[id] = OpenOrder{
			CurrencyPair: w.CurrencyPair,
			Side:         w.Action,
			Price:        w.Price,
			Quantity:     w.Amount,
			OrderTime:    time.Unix(int64(w.Timestamp), 0),
		}
	}
	return list, skipped, nil
}

// Wire converts the list back to its upstream keyed-object representation.
func (l OpenOrderList) Wire() ([]byte, error) {
	out := make(map[string]openOrderItemWire, len(l.OpenOrders))
	for id, o := range l.OpenOrders {
		out[strconv.FormatInt(id, 10)] = openOrderItemWire{
			CurrencyPair: o.CurrencyPair,
			Action:       o.Side,
			Price:        o.Price,
			Amount:       o.Quantity,
			Timestamp:    flexInt(o.OrderTime.Unix()),
		}
	}
	return json.Marshal(out)
}

// TradeExecution is one filled trade on the caller's account.
type TradeExecution struct {
	ExecutionID   int64           `json:"execution_id"`
	CurrencyPair  string          `json:"currency_pair"`
	TradeSide     string          `json:"trade_side"`  // buy, sell, self, unknown
	Price         decimal.Decimal `json:"price"`
	Quantity      decimal.Decimal `json:"quantity"`
	FeeAmount     decimal.Decimal `json:"fee_amount"`
	MarketRole    string          `json:"market_role"` // maker, taker, both, unknown
	ExecutionTime *time.Time      `json:"execution_time,omitempty"`
}

// TradeExecutionList is the normalized trade history, most recent first.
type TradeExecutionList struct {
	Executions []TradeExecution `json:"executions"`
}

type tradeExecutionItemWire struct {
	CurrencyPair string          `json:"currency_pair"`
	Action       string          `json:"action"`      // resting order's side
	YourAction   string          `json:"your_action"` // caller's side
	Price        decimal.Decimal `json:"price"`
	Amount       decimal.Decimal `json:"amount"`
	Fee          decimal.Decimal `json:"fee"`
	Timestamp    json.RawMessage `json:"timestamp,omitempty"`
}

// ParseTradeExecutions normalizes a trade_history response body. The wire
// shape is an object keyed by stringified execution ids; malformed entries
// are dropped individually and reported in the skip list. trade_side and
// market_role come from DeriveTradeSides. A missing or empty timestamp leaves
// ExecutionTime nil. Executions are ordered newest first.
func ParseTradeExecutions(data []byte) (TradeExecutionList, []ParseSkip, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return TradeExecutionList{}, nil, fmt.Errorf("trade history: %w", err)
	}

	list := TradeExecutionList{Executions: make([]TradeExecution, 0, len(raw))}
	var skipped []ParseSkip
	for key, item := range raw {
		id, err := strconv.ParseInt(key, 10, 64)
		if err != nil {
			skipped = append(skipped, ParseSkip{Key: key, Reason: fmt.Errorf("non-integer id: %w", err)})
			continue
		}
		var w tradeExecutionItemWire
		if err := json.Unmarshal(item, &w); err != nil {
			skipped = append(skipped, ParseSkip{Key: key, Reason: err})
			continue
		}
		execTime, err := parseOptionalUnix(w.Timestamp)
		if err != nil {
			skipped = append(skipped, ParseSkip{Key: key, Reason: err})
			continue
		}
		side, role := DeriveTradeSides(w.Action, w.YourAction)
		list.Executions = append(list.Executions, TradeExecution{
			ExecutionID:   id,
			CurrencyPair:  w.CurrencyPair,
			TradeSide:     side,
			Price:         w.Price,
			Quantity:      w.Amount,
			FeeAmount:     w.Fee,
			MarketRole:    role,
			ExecutionTime: execTime,
		})
	}
	sortByID(list.Executions, func(e TradeExecution) int64 { return -e.ExecutionID })
	return list, skipped, nil
}

// Wire converts the history back to its upstream keyed-object representation,
// inverting the trade-side derivation.
func (l TradeExecutionList) Wire() ([]byte, error) {
	out := make(map[string]tradeExecutionItemWire, len(l.Executions))
	for _, e := range l.Executions {
		action, yourAction := wireActions(e.TradeSide, e.MarketRole)
		w := tradeExecutionItemWire{
			CurrencyPair: e.CurrencyPair,
			Action:       action,
			YourAction:   yourAction,
			Price:        e.Price,
			Amount:       e.Quantity,
			Fee:          e.FeeAmount,
		}
		if e.ExecutionTime != nil {
			w.Timestamp = json.RawMessage(strconv.FormatInt(e.ExecutionTime.Unix(), 10))
		}
		out[strconv.FormatInt(e.ExecutionID, 10)] = w
	}
	return json.Marshal(out)
}

// parseOptionalUnix reads a Unix-seconds timestamp that may be absent, null,
// an empty string, a number, or a quoted number.
func parseOptionalUnix(raw json.RawMessage) (*time.Time, error) {
	if raw == nil {
		return nil, nil
	}
	s := string(raw)
	if s == "null" || s == `""` {
		return nil, nil
	}
	var n flexInt
	if err := n.UnmarshalJSON(raw); err != nil {
		return nil, err
	}
	t := time.Unix(int64(n), 0)
	return &t, nil
}
