package types

// DefaultMaxPools bounds the number of pools the module will create.
const DefaultMaxPools uint64 = 10000

// Params configures the dispatch layer. Keeper operations never read them;
// the Msg server resolves defaults before calling in.
type Params struct {
	// DefaultFee applies to pools created without an explicit fee.
	DefaultFee Fee `json:"default_fee"`
	// MaxPools caps pool creation. Zero disables the cap.
	MaxPools uint64 `json:"max_pools"`
}

// DefaultParams returns default parameters for the amm module
func DefaultParams() Params {
	return Params{
		DefaultFee: DefaultFee(), // 0.3%
		MaxPools:   DefaultMaxPools,
	}
}

// Validate validates the set of params
func (p Params) Validate() error {
	if err := p.DefaultFee.Validate(); err != nil {
		return ErrInvalidParams.Wrapf("default fee: %v", err)
	}
	return nil
}
