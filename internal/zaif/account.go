package zaif

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/curio184/zaifer-mcp/internal/model"
)

// AccountAPI serves the authenticated account endpoints. Every call is a
// signed POST with the endpoint name injected as the "method" parameter.
type AccountAPI struct {
	client  *Client
	baseURL string
}

// HistoryOptions narrow a deposit or withdrawal history query. Zero values
// mean "not set" and are omitted from the request.
type HistoryOptions struct {
	Count int   // maximum number of records
	From  int64 // Unix seconds, inclusive lower bound
	End   int64 // Unix seconds, inclusive upper bound
}

func (o HistoryOptions) apply(params url.Values) {
	if o.Count > 0 {
		params.Set("count", strconv.Itoa(o.Count))
	}
	if o.From > 0 {
		params.Set("from", strconv.FormatInt(o.From, 10))
	}
	if o.End > 0 {
		params.Set("end", strconv.FormatInt(o.End, 10))
	}
}

// GetBalance fetches the per-currency balances and API-key permissions.
func (a *AccountAPI) GetBalance(ctx context.Context) (model.AccountBalance, error) {
	params := url.Values{}
	params.Set("method", "get_info")
	body, err := a.client.Post(ctx, a.baseURL, params)
	if err != nil {
		return model.AccountBalance{}, err
	}
	balance, err := model.ParseAccountBalance(body)
	if err != nil {
		return model.AccountBalance{}, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return balance, nil
}

// GetProfile fetches the account's descriptive profile.
func (a *AccountAPI) GetProfile(ctx context.Context) (model.UserProfile, error) {
	params := url.Values{}
	params.Set("method", "get_personal_info")
	body, err := a.client.Post(ctx, a.baseURL, params)
	if err != nil {
		return model.UserProfile{}, err
	}
	profile, err := model.ParseUserProfile(body)
	if err != nil {
		return model.UserProfile{}, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return profile, nil
}

// GetIdentification fetches the account's identity record.
func (a *AccountAPI) GetIdentification(ctx context.Context) (model.UserIdentification, error) {
	params := url.Values{}
	params.Set("method", "get_id_info")
	body, err := a.client.Post(ctx, a.baseURL, params)
	if err != nil {
		return model.UserIdentification{}, err
	}
	ident, err := model.ParseUserIdentification(body)
	if err != nil {
		return model.UserIdentification{}, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return ident, nil
}

// GetDepositHistory fetches the deposit history for one currency. Entries
// the normalizer had to drop are logged and excluded, never fatal.
func (a *AccountAPI) GetDepositHistory(ctx context.Context, currency string, opts HistoryOptions) (model.DepositRecords, error) {
	params := url.Values{}
	params.Set("method", "deposit_history")
	params.Set("currency", currency)
	opts.apply(params)

	body, err := a.client.Post(ctx, a.baseURL, params)
	if err != nil {
		return model.DepositRecords{}, err
	}
	records, skipped, err := model.ParseDepositRecords(body)
	if err != nil {
		return model.DepositRecords{}, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	logSkips("deposit_history", skipped)
	return records, nil
}

// GetWithdrawHistory fetches the withdrawal history for one currency, with
// the same per-entry skip behavior as GetDepositHistory.
func (a *AccountAPI) GetWithdrawHistory(ctx context.Context, currency string, opts HistoryOptions) (model.WithdrawalRecords, error) {
	params := url.Values{}
	params.Set("method", "withdraw_history")
	params.Set("currency", currency)
	opts.apply(params)

	body, err := a.client.Post(ctx, a.baseURL, params)
	if err != nil {
		return model.WithdrawalRecords{}, err
	}
	records, skipped, err := model.ParseWithdrawalRecords(body)
	if err != nil {
		return model.WithdrawalRecords{}, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	logSkips("withdraw_history", skipped)
	return records, nil
}

// logSkips reports entries the normalizer dropped from a keyed collection.
func logSkips(method string, skipped []model.ParseSkip) {
	for _, s := range skipped {
		log.Warn().
			Str("method", method).
			Str("key", s.Key).
			Err(s.Reason).
			Msg("skipped malformed entry")
	}
}
