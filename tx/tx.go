package tx

import (
	"encoding/json"
)

// GuildTx is the signed envelope every operation travels in. Sig is a
// 65-byte secp256k1 signature over SigData; the sender is recovered
// from it, so the envelope carries no explicit sender field.
type GuildTx struct {
	Version uint8       `json:"version"`
	Type    GuildTxType `json:"type"`
	Nonce   uint64      `json:"nonce"`
	Tx      any         `json:"tx"`
	Sig     []byte      `json:"sig"`
}

type guildTxTmpl[Tx any] struct {
	Version uint8       `json:"version"`
	Type    GuildTxType `json:"type"`
	Nonce   uint64      `json:"nonce"`
	Tx      Tx          `json:"tx"`
	Sig     []byte      `json:"sig"`
}

// SigData is the canonical signing payload: the envelope with the
// signature slot replaced by the chain id, so signatures cannot be
// replayed across guilds.
func (tx *GuildTx) SigData(ext []byte) (dat []byte, err error) {
	ntx := *tx
	ntx.Sig = ext
	dat, err = json.Marshal(ntx)
	return
}

func parseGuildTxType(dat []byte) GuildTxType {
	var tx struct {
		Type GuildTxType `json:"type"`
	}
	err := json.Unmarshal(dat, &tx)
	if err != nil {
		return GuildTxTypeUnknown
	}
	return tx.Type
}

func unmarshalGuildTx[Tx any](dat []byte) (btx *GuildTx, err error) {
	var txt guildTxTmpl[Tx]
	err = json.Unmarshal(dat, &txt)
	if err != nil {
		return
	}
	btx = new(GuildTx)
	btx.Version = txt.Version
	btx.Type = txt.Type
	btx.Nonce = txt.Nonce
	btx.Tx = &txt.Tx
	btx.Sig = txt.Sig
	return
}

func UnmarshalGuildTx(dat []byte) (btx *GuildTx, err error) {
	tp := parseGuildTxType(dat)
	switch tp {
	case GuildTxTypeProposal:
		return unmarshalGuildTx[SubmitProposalTx](dat)
	case GuildTxTypeVote:
		return unmarshalGuildTx[VoteTx](dat)
	case GuildTxTypeProcess:
		return unmarshalGuildTx[ProcessTx](dat)
	case GuildTxTypeRagequit:
		return unmarshalGuildTx[RagequitTx](dat)
	case GuildTxTypeTransfer:
		return unmarshalGuildTx[TransferTx](dat)
	case GuildTxTypeMemberAction:
		return unmarshalGuildTx[MemberActionTx](dat)
	case GuildTxTypeShamanGrant:
		return unmarshalGuildTx[ShamanGrantTx](dat)
	default:
		err = ErrUnsupportedTxType
	}
	return
}

func MarshalGuildTx(btx *GuildTx) (dat []byte, err error) {
	return json.Marshal(btx)
}
