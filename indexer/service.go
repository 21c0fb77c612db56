package indexer

import (
	"encoding/hex"
	"net/http"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"

	"github.com/guilddao/guild-app/app"
	"github.com/guilddao/guild-app/state"
)

// Service is the HTTP surface: tx submission against the live ledger
// plus read queries served from the sqlite index and the state tree.
type Service struct {
	engine     *gin.Engine
	app        *app.GuildApp
	indexer    *Indexer
	listenAddr string
}

func NewService(listenAddr string, guildApp *app.GuildApp, indexer *Indexer) *Service {
	r := gin.Default()
	s := &Service{
		engine:     r,
		app:        guildApp,
		indexer:    indexer,
		listenAddr: listenAddr,
	}
	s.engine.POST("/tx", s.handleSendTx)
	s.engine.POST("/getProposals", s.handleGetProposals)
	s.engine.POST("/getVotes", s.handleGetVotes)
	s.engine.POST("/getMembers", s.handleGetMembers)
	s.engine.POST("/getMember", s.handleGetMember)
	s.engine.POST("/getCheckpoints", s.handleGetCheckpoints)
	s.engine.POST("/getRagequits", s.handleGetRagequits)
	s.engine.POST("/getTransfers", s.handleGetTransfers)
	s.engine.POST("/getHeader", s.handleGetHeader)
	return s
}

func (s *Service) Start() {
	s.engine.Run(s.listenAddr)
}

type SendTxReq struct {
	Tx string `json:"tx"`
}

type SendTxResponse struct {
	Hash string `json:"hash"`
}

func (s *Service) handleSendTx(c *gin.Context) {
	var requestData SendTxReq
	if err := c.ShouldBindJSON(&requestData); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	raw, err := hex.DecodeString(strings.TrimPrefix(requestData.Tx, "0x"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	hash, err := s.app.ExecTx(c.Request.Context(), raw)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, SendTxResponse{Hash: hash.Hex()})
}

type VoteInfo struct {
	Voter   string `json:"voter"`
	Support bool   `json:"support"`
	Weight  uint64 `json:"weight"`
	Unit    uint64 `json:"unit"`
}

type ProposalInfo struct {
	Proposal Proposal   `json:"proposal"`
	Votes    []VoteInfo `json:"votes"`
}

type GetProposalsReq struct {
	ProposalId uint64 `json:"proposalId"`
	Sponsor    string `json:"sponsor"`
	Page       int    `json:"page"`
	PageSize   int    `json:"pageSize"`
}

type GetProposalsResponse struct {
	Proposals []ProposalInfo `json:"proposals"`
	Total     uint64         `json:"total"`
}

func (s *Service) handleGetProposals(c *gin.Context) {
	var response GetProposalsResponse
	response.Proposals = make([]ProposalInfo, 0)
	var requestData GetProposalsReq
	if err := c.ShouldBindJSON(&requestData); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if requestData.ProposalId != 0 {
		info, err := s.getProposalInfoById(requestData.ProposalId)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		response.Proposals = append(response.Proposals, info)
		response.Total = 1
		c.JSON(http.StatusOK, response)
		return
	}

	var proposals []Proposal
	var total uint64
	var err error
	if requestData.Sponsor != "" {
		proposals, total, err = s.indexer.getProposalsBySponsor(requestData.Sponsor, requestData.Page, requestData.PageSize)
	} else {
		proposals, total, err = s.indexer.getProposals(requestData.Page, requestData.PageSize)
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	response.Total = total
	for _, proposal := range proposals {
		votes, err := s.indexer.getVotesByProposal(proposal.Id, 0, 1000)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		response.Proposals = append(response.Proposals, ProposalInfo{
			Proposal: proposal,
			Votes:    votesToVoteInfo(votes),
		})
	}
	c.JSON(http.StatusOK, response)
}

func (s *Service) getProposalInfoById(proposalId uint64) (ProposalInfo, error) {
	proposal, err := s.indexer.getProposalById(proposalId)
	if err != nil {
		return ProposalInfo{}, err
	}
	votes, err := s.indexer.getVotesByProposal(proposalId, 0, 1000)
	if err != nil {
		return ProposalInfo{}, err
	}
	return ProposalInfo{Proposal: proposal, Votes: votesToVoteInfo(votes)}, nil
}

func votesToVoteInfo(votes []Vote) []VoteInfo {
	infos := make([]VoteInfo, 0, len(votes))
	for _, v := range votes {
		infos = append(infos, VoteInfo{
			Voter:   v.Voter,
			Support: v.Support,
			Weight:  v.Weight,
			Unit:    v.Unit,
		})
	}
	return infos
}

type GetVotesReq struct {
	ProposalId uint64 `json:"proposalId"`
	Voter      string `json:"voter"`
	Page       int    `json:"page"`
	PageSize   int    `json:"pageSize"`
}

type GetVotesResponse struct {
	Votes []Vote `json:"votes"`
}

func (s *Service) handleGetVotes(c *gin.Context) {
	var response GetVotesResponse
	response.Votes = make([]Vote, 0)
	var requestData GetVotesReq
	if err := c.ShouldBindJSON(&requestData); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	var votes []Vote
	var err error
	if requestData.Voter != "" {
		votes, err = s.indexer.getVotesByVoter(requestData.Voter, requestData.Page, requestData.PageSize)
	} else {
		votes, err = s.indexer.getVotesByProposal(requestData.ProposalId, requestData.Page, requestData.PageSize)
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	response.Votes = votes
	c.JSON(http.StatusOK, response)
}

type GetMembersReq struct {
	Page     int `json:"page"`
	PageSize int `json:"pageSize"`
}

type GetMembersResponse struct {
	Members []Member `json:"members"`
	Total   uint64   `json:"total"`
}

func (s *Service) handleGetMembers(c *gin.Context) {
	var response GetMembersResponse
	response.Members = make([]Member, 0)
	var requestData GetMembersReq
	if err := c.ShouldBindJSON(&requestData); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	members, total, err := s.indexer.getMembers(requestData.Page, requestData.PageSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	response.Members = members
	response.Total = total
	c.JSON(http.StatusOK, response)
}

type GetMemberReq struct {
	Address string `json:"address"`
}

// handleGetMember reads the live state tree, not the index, so the
// response reflects the last committed version.
func (s *Service) handleGetMember(c *gin.Context) {
	var requestData GetMemberReq
	if err := c.ShouldBindJSON(&requestData); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	member, height, err := s.app.DB().GetMember(common.HexToAddress(requestData.Address))
	if err != nil {
		if err == state.ErrNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"member": member, "height": height})
}

type GetCheckpointsReq struct {
	Address string `json:"address"`
}

func (s *Service) handleGetCheckpoints(c *gin.Context) {
	var requestData GetCheckpointsReq
	if err := c.ShouldBindJSON(&requestData); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	cps, err := s.app.DB().Checkpoints(common.HexToAddress(requestData.Address))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"checkpoints": cps})
}

type GetRagequitsReq struct {
	Member   string `json:"member"`
	Page     int    `json:"page"`
	PageSize int    `json:"pageSize"`
}

type GetRagequitsResponse struct {
	Ragequits []Ragequit `json:"ragequits"`
	Total     uint64     `json:"total"`
}

func (s *Service) handleGetRagequits(c *gin.Context) {
	var response GetRagequitsResponse
	response.Ragequits = make([]Ragequit, 0)
	var requestData GetRagequitsReq
	if err := c.ShouldBindJSON(&requestData); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	quits, total, err := s.indexer.getRagequits(requestData.Member, requestData.Page, requestData.PageSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	response.Ragequits = quits
	response.Total = total
	c.JSON(http.StatusOK, response)
}

type GetTransfersReq struct {
	Member   string `json:"member"`
	Page     int    `json:"page"`
	PageSize int    `json:"pageSize"`
}

type GetTransfersResponse struct {
	Transfers []Transfer `json:"transfers"`
	Total     uint64     `json:"total"`
}

func (s *Service) handleGetTransfers(c *gin.Context) {
	var response GetTransfersResponse
	response.Transfers = make([]Transfer, 0)
	var requestData GetTransfersReq
	if err := c.ShouldBindJSON(&requestData); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	transfers, total, err := s.indexer.getTransfersByMember(requestData.Member, requestData.Page, requestData.PageSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	response.Transfers = transfers
	response.Total = total
	c.JSON(http.StatusOK, response)
}

func (s *Service) handleGetHeader(c *gin.Context) {
	c.JSON(http.StatusOK, s.app.DB().Header())
}
