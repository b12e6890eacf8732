package wallet

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/mneelabs/agent-gateway/internal/common/errors"
	"github.com/mneelabs/agent-gateway/pkg/chain"
	"github.com/mneelabs/agent-gateway/pkg/payment"
	"go.uber.org/zap"
)

// Service exposes display-only wallet reads. Balance is informational and
// never part of the authorization path.
type Service struct {
	reader       chain.Reader
	tokenAddress common.Address
	decimals     int
	logger       *zap.Logger
}

// NewService creates a new wallet service
func NewService(reader chain.Reader, tokenAddress common.Address, decimals int, logger *zap.Logger) *Service {
	return &Service{
		reader:       reader,
		tokenAddress: tokenAddress,
		decimals:     decimals,
		logger:       logger,
	}
}

// GetBalance reads the token balance of an address.
func (s *Service) GetBalance(ctx context.Context, address string) (*BalanceResponse, error) {
	if err := chain.ValidateAddress(address); err != nil {
		return nil, errors.InvalidInput("Invalid Ethereum address format")
	}

	owner := common.HexToAddress(address)
	balance, err := s.reader.ReadTokenBalance(ctx, s.tokenAddress, owner)
	if err != nil {
		s.logger.Error("failed to read token balance",
			zap.String("address", address),
			zap.Error(err),
		)
		return nil, errors.ChainError("Failed to read token balance")
	}

	return &BalanceResponse{
		Address:      chain.NormalizeAddress(address),
		BalanceUnits: balance.String(),
		Balance:      payment.FormatUnits(balance, s.decimals),
	}, nil
}
