package binance

import (
	"fmt"

	"github.com/goccy/go-json"
	"github.com/shopspring/decimal"

	"micro_go/internal/domain"
)

// Stream kinds composing one logical endpoint per (symbol, kind) pair.
const (
	StreamTrade      = "trade"
	StreamBookTicker = "bookTicker"
)

// tradeMessage is the raw trade event schema.
type tradeMessage struct {
	Symbol    string `json:"s"`
	Price     string `json:"p"` // string decimal
	Quantity  string `json:"q"` // string decimal
	TradeTime int64  `json:"T"` // milliseconds
	TradeID   int64  `json:"t"`
}

// bookTickerMessage is the raw top-of-book schema. There is no event-time
// field; the update id `u` is the only latency proxy available.
type bookTickerMessage struct {
	UpdateID int64  `json:"u"`
	Symbol   string `json:"s"`
	BidPrice string `json:"b"`
	BidQty   string `json:"B"`
	AskPrice string `json:"a"`
	AskQty   string `json:"A"`
}

// decodeTrade parses a trade frame, failing closed: a frame missing any
// required field is rejected rather than producing a partial trade.
func decodeTrade(payload []byte) (domain.Trade, error) {
	var msg tradeMessage
	if err := json.Unmarshal(payload, &msg); err != nil {
		return domain.Trade{}, fmt.Errorf("%w: %v", domain.ErrMalformedFrame, err)
	}
	if msg.Price == "" || msg.Quantity == "" || msg.TradeTime == 0 {
		return domain.Trade{}, fmt.Errorf("%w: trade requires p, q, T", domain.ErrMissingField)
	}

	price, err := decimal.NewFromString(msg.Price)
	if err != nil {
		return domain.Trade{}, fmt.Errorf("%w: price %q", domain.ErrMalformedFrame, msg.Price)
	}
	qty, err := decimal.NewFromString(msg.Quantity)
	if err != nil {
		return domain.Trade{}, fmt.Errorf("%w: quantity %q", domain.ErrMalformedFrame, msg.Quantity)
	}

	return domain.Trade{
		Symbol:         msg.Symbol,
		Price:          price,
		Quantity:       qty,
		ExchangeTimeMS: msg.TradeTime,
		TradeID:        msg.TradeID,
	}, nil
}

// decodeBookTicker parses a top-of-book frame. A message missing a
// required field is rejected whole so the prior book state stays intact.
func decodeBookTicker(payload []byte) (domain.TopOfBookUpdate, error) {
	var msg bookTickerMessage
	if err := json.Unmarshal(payload, &msg); err != nil {
		return domain.TopOfBookUpdate{}, fmt.Errorf("%w: %v", domain.ErrMalformedFrame, err)
	}
	if msg.BidPrice == "" || msg.BidQty == "" || msg.AskPrice == "" || msg.AskQty == "" || msg.UpdateID == 0 {
		return domain.TopOfBookUpdate{}, fmt.Errorf("%w: bookTicker requires b, B, a, A, u", domain.ErrMissingField)
	}

	bidPrice, err := decimal.NewFromString(msg.BidPrice)
	if err != nil {
		return domain.TopOfBookUpdate{}, fmt.Errorf("%w: bid price %q", domain.ErrMalformedFrame, msg.BidPrice)
	}
	bidQty, err := decimal.NewFromString(msg.BidQty)
	if err != nil {
		return domain.TopOfBookUpdate{}, fmt.Errorf("%w: bid qty %q", domain.ErrMalformedFrame, msg.BidQty)
	}
	askPrice, err := decimal.NewFromString(msg.AskPrice)
	if err != nil {
		return domain.TopOfBookUpdate{}, fmt.Errorf("%w: ask price %q", domain.ErrMalformedFrame, msg.AskPrice)
	}
	askQty, err := decimal.NewFromString(msg.AskQty)
	if err != nil {
		return domain.TopOfBookUpdate{}, fmt.Errorf("%w: ask qty %q", domain.ErrMalformedFrame, msg.AskQty)
	}

	return domain.TopOfBookUpdate{
		Symbol:   msg.Symbol,
		BidPrice: bidPrice,
		BidQty:   bidQty,
		AskPrice: askPrice,
		AskQty:   askQty,
		UpdateID: msg.UpdateID,
	}, nil
}
