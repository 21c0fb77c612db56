package main

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/guilddao/guild-app/crypto"
	"github.com/guilddao/guild-app/state"
	"github.com/guilddao/guild-app/tx"
)

func postJSON(url string, path string, req any, res any) error {
	body, err := json.Marshal(req)
	if err != nil {
		return err
	}
	resp, err := http.Post(url+path, "application/json", bytes.NewBuffer(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	buf, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("service error %v: %s", resp.StatusCode, string(buf))
	}
	return json.Unmarshal(buf, res)
}

func queryHeader(url string) (*state.StateHeader, error) {
	header := new(state.StateHeader)
	if err := postJSON(url, "/getHeader", struct{}{}, header); err != nil {
		fmt.Printf("query header err:%v\n", err)
		return nil, err
	}
	return header, nil
}

func queryMember(url string, address string) (*state.Member, error) {
	var res struct {
		Member *state.Member `json:"member"`
		Height uint64        `json:"height"`
	}
	if err := postJSON(url, "/getMember", map[string]string{"address": address}, &res); err != nil {
		fmt.Printf("query member err:%v\n", err)
		return nil, err
	}
	return res.Member, nil
}

// signAndSend fills in chain id and nonce from the service, signs the
// envelope and submits it. nonce 0 means "fetch the sender's next".
func signAndSend(url string, keyPath string, nonce uint64, btx *tx.GuildTx, noSend bool) error {
	pv, err := crypto.LoadFilePV(keyPath)
	if err != nil {
		fmt.Printf("load key err:%v\n", err)
		return err
	}
	header, err := queryHeader(url)
	if err != nil {
		return err
	}
	if nonce == 0 {
		member, err := queryMember(url, pv.Address().Hex())
		if err == nil && member != nil {
			nonce = member.Nonce
		}
	}
	btx.Nonce = nonce

	dat, err := btx.SigData([]byte(header.ChainId))
	if err != nil {
		fmt.Printf("tx sign data err:%v\n", err)
		return err
	}
	sig, err := pv.Sign(dat)
	if err != nil {
		fmt.Printf("sign tx err:%v\n", err)
		return err
	}
	println("address:", pv.Address().Hex())
	if noSend {
		fmt.Println("transaction signature:")
		fmt.Println(hex.EncodeToString(sig))
		return nil
	}
	btx.Sig = sig
	raw, err := tx.MarshalGuildTx(btx)
	if err != nil {
		fmt.Printf("marshal tx err:%v\n", err)
		return err
	}
	var res struct {
		Hash string `json:"hash"`
	}
	if err := postJSON(url, "/tx", map[string]string{"tx": hex.EncodeToString(raw)}, &res); err != nil {
		fmt.Printf("send tx err:%v\n", err)
		return err
	}
	fmt.Printf("tx applied, state hash:%v\n", res.Hash)
	return nil
}
