package model

import (
	"fmt"
	"strconv"
	"time"

	json "github.com/goccy/go-json"
	"github.com/shopspring/decimal"
)

// AccountBalance maps currency codes to balances, plus the API-key permission
// flags when the endpoint reports them.
type AccountBalance struct {
	Balances    map[string]decimal.Decimal `json:"balances"`
	Permissions map[string]bool            `json:"permissions,omitempty"`
}

type accountBalanceWire struct {
	Funds  map[string]decimal.Decimal `json:"funds"`
	Rights map[string]boolFlag        `json:"rights,omitempty"`
}

// ParseAccountBalance normalizes a get_info response body. Permission flags
// arrive boolean-like (0/1 or true/false) and are coerced to bool.
func ParseAccountBalance(data []byte) (AccountBalance, error) {
	var w accountBalanceWire
	if err := json.Unmarshal(data, &w); err != nil {
		return AccountBalance{}, fmt.Errorf("account balance: %w", err)
	}
	b := AccountBalance{Balances: w.Funds}
	if b.Balances == nil {
		b.Balances = map[string]decimal.Decimal{}
	}
	if w.Rights != nil {
		b.Permissions = make(map[string]bool, len(w.Rights))
		for k, v := range w.Rights {
			b.Permissions[k] = bool(v)
		}
	}
	return b, nil
}

// Wire converts the balance back to its upstream representation.
func (b AccountBalance) Wire() ([]byte, error) {
	w := accountBalanceWire{Funds: b.Balances}
	if b.Permissions != nil {
		w.Rights = make(map[string]boolFlag, len(b.Permissions))
		for k, v := range b.Permissions {
			w.Rights[k] = boolFlag(v)
		}
	}
	return json.Marshal(w)
}

// UserProfile holds the descriptive account metadata from get_personal_info.
type UserProfile struct {
	RankingID string `json:"ranking_id"`
	IconPath  string `json:"icon_path"`
	AreaID    int    `json:"area_id"`
	Nickname  string `json:"nickname"`
}

// userProfileWire carries the upstream names; ranking_nickname is the
// display nickname despite the name.
type userProfileWire struct {
	RankingID       string  `json:"ranking_id"`
	IconPath        *string `json:"icon_path"`
	AreaID          int     `json:"area_id"`
	RankingNickname string  `json:"ranking_nickname"`
}

// ParseUserProfile normalizes a get_personal_info response body. A null
// icon_path becomes the empty string.
func ParseUserProfile(data []byte) (UserProfile, error) {
	var w userProfileWire
	if err := json.Unmarshal(data, &w); err != nil {
		return UserProfile{}, fmt.Errorf("user profile: %w", err)
	}
	p := UserProfile{
		RankingID: w.RankingID,
		AreaID:    w.AreaID,
		Nickname:  w.RankingNickname,
	}
	if w.IconPath != nil {
		p.IconPath = *w.IconPath
	}
	return p, nil
}

// Wire converts the profile back to its upstream representation.
func (p UserProfile) Wire() ([]byte, error) {
	icon := p.IconPath
	return json.Marshal(userProfileWire{
		RankingID:       p.RankingID,
		IconPath:        &icon,
		AreaID:          p.AreaID,
		RankingNickname: p.Nickname,
	})
}

// UserIdentification holds the identity record from get_id_info.
type UserIdentification struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	Kana      string `json:"kana"`
	Certified bool   `json:"certified"`
}

type userIdentificationWire struct {
	ID        json.RawMessage `json:"id"` // integer on some responses, string on others
	Email     string          `json:"email"`
	Name      string          `json:"name"`
	Kana      string          `json:"kana"`
	Certified boolFlag        `json:"certified"`
}

// ParseUserIdentification normalizes a get_id_info response body. The record
// is nested under a "user" key on live responses; a flat object is accepted
// as well.
func ParseUserIdentification(data []byte) (UserIdentification, error) {
	var outer struct {
		User json.RawMessage `json:"user"`
	}
	if err := json.Unmarshal(data, &outer); err != nil {
		return UserIdentification{}, fmt.Errorf("user identification: %w", err)
	}
	if outer.User != nil {
		data = outer.User
	}
	var w userIdentificationWire
	if err := json.Unmarshal(data, &w); err != nil {
		return UserIdentification{}, fmt.Errorf("user identification: %w", err)
	}
	id := string(w.ID)
	if unquoted, err := strconv.Unquote(id); err == nil {
		id = unquoted
	}
	return UserIdentification{
		ID:        id,
		Email:     w.Email,
		Name:      w.Name,
		Kana:      w.Kana,
		Certified: bool(w.Certified),
	}, nil
}

// Wire converts the identification back to its upstream representation.
func (u UserIdentification) Wire() ([]byte, error) {
	id, err := json.Marshal(u.ID)
	if err != nil {
		return nil, err
	}
	return json.Marshal(map[string]userIdentificationWire{
		"user": {
			ID:        id,
			Email:     u.Email,
			Name:      u.Name,
			Kana:      u.Kana,
			Certified: boolFlag(u.Certified),
		},
	})
}

// DepositRecord is one deposit history entry.
type DepositRecord struct {
	ID        int64           `json:"id"`
	Timestamp int64           `json:"timestamp"` // Unix seconds
	Address   string          `json:"address"`
	Amount    decimal.Decimal `json:"amount"`
	Txid      string          `json:"txid"`
}

// Time returns the deposit timestamp as a time.Time.
func (r DepositRecord) Time() time.Time { return time.Unix(r.Timestamp, 0) }

// DepositRecords is the normalized deposit history.
type DepositRecords struct {
	Items []DepositRecord `json:"items"`
}

type depositItemWire struct {
	Timestamp flexInt         `json:"timestamp"`
	Address   string          `json:"address"`
	Amount    decimal.Decimal `json:"amount"`
	Txid      string          `json:"txid"`
}

// ParseDepositRecords normalizes a deposit_history response body. The wire
// shape is an object keyed by stringified deposit ids. Entries that are not
// objects or whose numeric fields cannot be coerced are dropped individually
// and reported in the returned skip list; one bad entry never fails the
// collection. Items are returned in ascending id order.
func ParseDepositRecords(data []byte) (DepositRecords, []ParseSkip, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return DepositRecords{}, nil, fmt.Errorf("deposit history: %w", err)
	}

	records := DepositRecords{Items: make([]DepositRecord, 0, len(raw))}
	var skipped []ParseSkip
	for key, item := range raw {
		id, err := strconv.ParseInt(key, 10, 64)
		if err != nil {
			skipped = append(skipped, ParseSkip{Key: key, Reason: fmt.Errorf("non-integer id: %w", err)})
			continue
		}
		var w depositItemWire
		if err := json.Unmarshal(item, &w); err != nil {
			skipped = append(skipped, ParseSkip{Key: key, Reason: err})
			continue
		}
		records.Items = append(records.Items, DepositRecord{
			ID:        id,
			Timestamp: int64(w.Timestamp),
			Address:   w.Address,
			Amount:    w.Amount,
			Txid:      w.Txid,
		})
	}
	sortByID(records.Items, func(r DepositRecord) int64 { return r.ID })
	return records, skipped, nil
}

// Wire converts the history back to its upstream keyed-object representation.
func (d DepositRecords) Wire() ([]byte, error) {
	out := make(map[string]depositItemWire, len(d.Items))
	for _, r := range d.Items {
		out[strconv.FormatInt(r.ID, 10)] = depositItemWire{
			Timestamp: flexInt(r.Timestamp),
			Address:   r.Address,
			Amount:    r.Amount,
			Txid:      r.Txid,
		}
	}
	return json.Marshal(out)
}

// WithdrawalRecord is one withdrawal history entry.
type WithdrawalRecord struct {
	ID        int64           `json:"id"`
	Timestamp int64           `json:"timestamp"` // Unix seconds
	Address   string          `json:"address"`
	Amount    decimal.Decimal `json:"amount"`
	Txid      string          `json:"txid"`
	Fee       decimal.Decimal `json:"fee"`
	Status    string          `json:"status"`
}

// Time returns the withdrawal timestamp as a time.Time.
func (r WithdrawalRecord) Time() time.Time { return time.Unix(r.Timestamp, 0) }

// WithdrawalRecords is the normalized withdrawal history.
type WithdrawalRecords struct {
	Items []WithdrawalRecord `json:"items"`
}

type withdrawalItemWire struct {
	Timestamp flexInt         `json:"timestamp"`
	Address   string          `json:"address"`
	Amount    decimal.Decimal `json:"amount"`
	Txid      string          `json:"txid"`
	Fee       decimal.Decimal `json:"fee"`
	Status    string          `json:"status"`
}

// ParseWithdrawalRecords normalizes a withdraw_history response body with the
// same per-item skip behavior as ParseDepositRecords.
func ParseWithdrawalRecords(data []byte) (WithdrawalRecords, []ParseSkip, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return WithdrawalRecords{}, nil, fmt.Errorf("withdraw history: %w", err)
	}

	records := WithdrawalRecords{Items: make([]WithdrawalRecord, 0, len(raw))}
	var skipped []ParseSkip
	for key, item := range raw {
		id, err := strconv.ParseInt(key, 10, 64)
		if err != nil {
			skipped = append(skipped, ParseSkip{Key: key, Reason: fmt.Errorf("non-integer id: %w", err)})
			continue
		}
		var w withdrawalItemWire
		if err := json.Unmarshal(item, &w); err != nil {
			skipped = append(skipped, ParseSkip{Key: key, Reason: err})
			continue
		}
		records.Items = append(records.Items, WithdrawalRecord{
			ID:        id,
			Timestamp: int64(w.Timestamp),
			Address:   w.Address,
			Amount:    w.Amount,
			Txid:      w.Txid,
			Fee:       w.Fee,
			Status:    w.Status,
		})
	}
	sortByID(records.Items, func(r WithdrawalRecord) int64 { return r.ID })
	return records, skipped, nil
}

// Wire converts the history back to its upstream keyed-object representation.
func (d WithdrawalRecords) Wire() ([]byte, error) {
	out := make(map[string]withdrawalItemWire, len(d.Items))
	for _, r := range d.Items {
		out[strconv.FormatInt(r.ID, 10)] = withdrawalItemWire{
			Timestamp: flexInt(r.Timestamp),
			Address:   r.Address,
			Amount:    r.Amount,
			Txid:      r.Txid,
			Fee:       r.Fee,
			Status:    r.Status,
		}
	}
	return json.Marshal(out)
}

// WithdrawalResult is the response to a withdrawal request: the transaction
// id and the balances after the withdrawal was queued.
type WithdrawalResult struct {
	Txid     string                     `json:"txid"`
	Balances map[string]decimal.Decimal `json:"balances"`
}

type withdrawalResultWire struct {
	Txid  string                     `json:"txid"`
	Funds map[string]decimal.Decimal `json:"funds"`
}

// ParseWithdrawalResult normalizes a withdraw response body.
func ParseWithdrawalResult(data []byte) (WithdrawalResult, error) {
	var w withdrawalResultWire
	if err := json.Unmarshal(data, &w); err != nil {
		return WithdrawalResult{}, fmt.Errorf("withdrawal result: %w", err)
	}
	if w.Funds == nil {
		w.Funds = map[string]decimal.Decimal{}
	}
	return WithdrawalResult{Txid: w.Txid, Balances: w.Funds}, nil
}

// Wire converts the result back to its upstream representation.
func (r WithdrawalResult) Wire() ([]byte, error) {
	return json.Marshal(withdrawalResultWire{Txid: r.Txid, Funds: r.Balances})
}
