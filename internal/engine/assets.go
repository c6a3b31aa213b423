package engine

import (
	"context"
	"strings"
	"time"

	"github.com/jask/jaskwallet/internal/database/repository"
)

// AssetsController keeps the watched tokens per network.
type AssetsController struct {
	tokens  *repository.TokenRepo
	network *NetworkController
}

func NewAssetsController(tokens *repository.TokenRepo, network *NetworkController) *AssetsController {
	return &AssetsController{tokens: tokens, network: network}
}

// AddToken watches a token on the active network.
func (a *AssetsController) AddToken(ctx context.Context, address, symbol string, decimals int) error {
	p, err := a.network.Provider(ctx)
	if err != nil {
		return err
	}
	return a.tokens.Upsert(ctx, repository.Token{
		Address:  strings.ToLower(address),
		Network:  p.NetworkKey(),
		Symbol:   symbol,
		Decimals: decimals,
	})
}

func (a *AssetsController) State(ctx context.Context) (AssetsState, error) {
	p, err := a.network.Provider(ctx)
	if err != nil {
		return AssetsState{}, err
	}
	rows, err := a.tokens.List(ctx, p.NetworkKey())
	if err != nil {
		return AssetsState{}, err
	}
	st := AssetsState{Tokens: make([]Token, 0, len(rows))}
	for _, r := range rows {
		st.Tokens = append(st.Tokens, Token{Address: r.Address, Symbol: r.Symbol, Decimals: r.Decimals})
	}
	return st, nil
}

func assetsContractState() AssetsContractState {
	return AssetsContractState{ERC20Standard: "ERC20", ERC721Standard: "ERC721"}
}

const assetsDetectionInterval = 3 * time.Minute

func assetsDetectionState() AssetsDetectionState {
	return AssetsDetectionState{Interval: assetsDetectionInterval.Milliseconds()}
}
