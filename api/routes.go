package api

const (
	// PingEndpoint is the endpoint for checking the API status
	PingEndpoint = "/ping"
	// AdminInitializeEndpoint establishes the global configuration, once
	AdminInitializeEndpoint = "/admin/initialize"
	// AdminPauseEndpoint and AdminUnpauseEndpoint flip the paused flag
	AdminPauseEndpoint   = "/admin/pause"
	AdminUnpauseEndpoint = "/admin/unpause"
	// AdminAuthorityEndpoint transfers the authority to a new address
	AdminAuthorityEndpoint = "/admin/authority"
	// AdminFeeCollectorEndpoint replaces the fee collector address
	AdminFeeCollectorEndpoint = "/admin/fee-collector"
	// PoolsEndpoint lists pools (GET) and creates one (POST)
	PoolsEndpoint = "/pools"
	// PoolEndpoint returns one pool (GET) or closes it (DELETE)
	PoolURLParam = "poolId"
	PoolEndpoint = "/pools/{" + PoolURLParam + "}"
	// DepositsEndpoint submits a deposit to a pool
	DepositsEndpoint = PoolEndpoint + "/deposits"
	// CommitmentsEndpoint is the append-only commitment event log; clients
	// read it to rebuild Merkle paths off-chain (query param: from)
	CommitmentsEndpoint = PoolEndpoint + "/commitments"
	// WithdrawalsEndpoint submits a withdrawal (POST) and lists the
	// withdrawal event log (GET)
	WithdrawalsEndpoint = PoolEndpoint + "/withdrawals"
)
