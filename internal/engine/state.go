package engine

import jsoniter "github.com/json-iterator/go"

// jsonAPI encodes stored settings, the vault and HTTP payloads.
var jsonAPI = jsoniter.ConfigCompatibleWithStandardLibrary

// State is the background state of every controller, keyed the way the
// diagnostic snapshot and the settings summary expect it.
type State struct {
	KeyringController         KeyringState         `json:"KeyringController"`
	NetworkController         NetworkState         `json:"NetworkController"`
	PreferencesController     PreferencesState     `json:"PreferencesController"`
	TransactionController     TransactionState     `json:"TransactionController"`
	CurrencyRateController    CurrencyRateState    `json:"CurrencyRateController"`
	NetworkStatusController   NetworkStatusState   `json:"NetworkStatusController"`
	AssetsController          AssetsState          `json:"AssetsController"`
	AssetsContractController  AssetsContractState  `json:"AssetsContractController"`
	AssetsDetectionController AssetsDetectionState `json:"AssetsDetectionController"`
	PhishingController        PhishingState        `json:"PhishingController"`
}

// KeyringState never carries keyring accounts; those are read separately
// through Keyrings.
type KeyringState struct {
	HasVault   bool `json:"hasVault"`
	IsUnlocked bool `json:"isUnlocked"`
}

// Keyring is the public view of a keyring.
type Keyring struct {
	Type     string   `json:"type"`
	Accounts []string `json:"accounts"`
}

type Provider struct {
	Type      string `json:"type"`
	RPCTarget string `json:"rpcTarget,omitempty"`
}

type NetworkState struct {
	Provider Provider `json:"provider"`
	Network  string   `json:"network"`
}

type PreferencesState struct {
	IPFSGateway     string   `json:"ipfsGateway"`
	FrequentRPCList []string `json:"frequentRpcList"`
	SelectedAddress string   `json:"selectedAddress,omitempty"`
}

type TransactionState struct {
	Transactions []TransactionMeta `json:"transactions"`
}

type TransactionMeta struct {
	ID        string `json:"id"`
	NetworkID string `json:"networkID"`
	Hash      string `json:"transactionHash,omitempty"`
	From      string `json:"from"`
	To        string `json:"to"`
	Value     string `json:"value"`
	Status    string `json:"status"`
	Time      int64  `json:"time"`
}

type CurrencyRateState struct {
	ConversionRate  float64 `json:"conversionRate"`
	CurrentCurrency string  `json:"currentCurrency"`
	ConversionDate  int64   `json:"conversionDate"`
	NativeCurrency  string  `json:"nativeCurrency"`
}

type NetworkStatusState struct {
	NetworkStatus map[string]string `json:"networkStatus"`
}

type AssetsState struct {
	Tokens []Token `json:"tokens"`
}

type Token struct {
	Address  string `json:"address"`
	Symbol   string `json:"symbol"`
	Decimals int    `json:"decimals"`
}

type AssetsContractState struct {
	ERC20Standard  string `json:"erc20Standard"`
	ERC721Standard string `json:"erc721Standard"`
}

type AssetsDetectionState struct {
	Interval int64 `json:"interval"`
}

type PhishingState struct {
	Whitelist []string `json:"whitelist"`
}
