package state

import (
	"encoding/json"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/guilddao/guild-app/tx"
	"github.com/guilddao/guild-app/types"
)

// SubmitProposal validates and appends a proposal to the queue. The
// voting window is fixed here, from the sampled unit and configured
// period bounds; this is the only proposal-creation path.
func (s *State) SubmitProposal(stx *tx.SubmitProposalTx, sponsor common.Address, now uint64, checkOnly bool) (event *types.EventProposal, err error) {
	cfg := s.header.Config
	if stx.VotingPeriod < cfg.MinVotingPeriod || stx.VotingPeriod > cfg.MaxVotingPeriod {
		return nil, ErrVotingPeriodOutOfRange
	}
	if len(stx.Targets) == 0 {
		return nil, ErrArrayParity
	}
	if len(stx.Targets) != len(stx.Values) || len(stx.Values) != len(stx.Payloads) {
		return nil, ErrArrayParity
	}
	if len(stx.Targets) > MaxActionItems {
		return nil, ErrTooManyActions
	}
	kind := types.ProposalKind(stx.Kind)
	if !kind.Valid() {
		return nil, ErrInvalidProposalKind
	}
	switch kind {
	case types.KindMembership:
		for _, payload := range stx.Payloads {
			var bc types.BalanceChange
			if err := json.Unmarshal(payload, &bc); err != nil {
				return nil, fmt.Errorf("membership payload: %w", err)
			}
		}
	case types.KindPeriod:
		if len(stx.Values) != 5 {
			return nil, ErrArrayParity
		}
	}
	if checkOnly {
		return nil, nil
	}
	s.logger.Debug("apply proposal", "sponsor", sponsor, "kind", kind.String(), "height", s.header.Height)
	s.header.ProposalCount += 1
	proposal := types.Proposal{
		Index:        s.header.ProposalCount,
		Kind:         kind,
		Sponsor:      sponsor,
		VotingStarts: now,
		VotingEnds:   now + stx.VotingPeriod,
		Targets:      stx.Targets,
		Values:       stx.Values,
		Payloads:     stx.Payloads,
		Status:       types.ProposalStatusVoting,
		DetailsHash:  crypto.Keccak256Hash([]byte(stx.Details)),
	}
	if err = s.setRecord(fmt.Sprintf(KeyProposal, proposal.Index), &proposal); err != nil {
		return nil, err
	}
	event = &types.EventProposal{
		Index:        proposal.Index,
		Kind:         proposal.Kind,
		Sponsor:      proposal.Sponsor,
		VotingStarts: proposal.VotingStarts,
		VotingEnds:   proposal.VotingEnds,
		DetailsHash:  proposal.DetailsHash,
	}
	s.emit(types.EventProposalType, now, event)
	return
}

// CastVote records one vote per member per proposal. The weight is the
// voter's checkpointed weight as of the proposal's voting start, never
// the weight at cast time.
func (s *State) CastVote(vtx *tx.VoteTx, voter common.Address, now uint64, checkOnly bool) (event *types.EventVote, err error) {
	proposal, err := s.GetProposal(vtx.Proposal)
	if err != nil {
		return nil, err
	}
	if now > proposal.VotingEnds {
		return nil, ErrVotingEnded
	}
	if _, err := s.GetVote(vtx.Proposal, voter); err == nil {
		return nil, ErrAlreadyVoted
	} else if err != ErrNotFound {
		return nil, err
	}
	weight, err := s.WeightAt(voter, proposal.VotingStarts, now)
	if err != nil {
		return nil, err
	}
	if checkOnly {
		return nil, nil
	}
	s.logger.Debug("apply vote", "voter", voter, "proposal", vtx.Proposal, "support", vtx.Support, "weight", weight)
	if vtx.Support {
		proposal.YesVotes += weight
	} else {
		proposal.NoVotes += weight
	}
	if err = s.setRecord(fmt.Sprintf(KeyProposal, proposal.Index), proposal); err != nil {
		return nil, err
	}
	vote := types.Vote{
		Voter:    voter,
		Proposal: vtx.Proposal,
		Support:  vtx.Support,
		Weight:   weight,
		Unit:     now,
	}
	if err = s.setRecord(fmt.Sprintf(KeyVote, vtx.Proposal, voter), &vote); err != nil {
		return nil, err
	}
	if vtx.Support {
		m, err := s.getOrNewMember(voter)
		if err != nil {
			return nil, err
		}
		if vtx.Proposal > m.HighestYesVote {
			m.HighestYesVote = vtx.Proposal
			if err = s.setMember(m); err != nil {
				return nil, err
			}
		}
	}
	event = &types.EventVote{
		Proposal: vtx.Proposal,
		Voter:    voter,
		Support:  vtx.Support,
		Weight:   weight,
	}
	s.emit(types.EventVoteType, now, event)
	return
}

// ProcessProposal retires the next proposal in strict submission
// order, executing its effect when yes outweighs no. Rejection is a
// terminal outcome, not an error; the proposal is retired either way,
// exactly once.
func (s *State) ProcessProposal(ptx *tx.ProcessTx, now uint64, checkOnly bool) (event *types.EventProcessed, err error) {
	proposal, err := s.GetProposal(ptx.Proposal)
	if err != nil {
		return nil, err
	}
	if proposal.Processed || ptx.Proposal <= s.header.LastProcessed {
		return nil, ErrAlreadyProcessed
	}
	if ptx.Proposal != s.header.LastProcessed+1 {
		return nil, ErrPrevUnprocessed
	}
	if now < proposal.VotingEnds+s.header.Config.GracePeriod {
		return nil, ErrNotReadyForProcessing
	}
	if checkOnly {
		return nil, nil
	}
	s.logger.Debug("apply process", "proposal", ptx.Proposal, "kind", proposal.Kind.String(), "yes", proposal.YesVotes, "no", proposal.NoVotes)
	if proposal.Passed() {
		proposal.Status = types.ProposalStatusAccepted
		if err = s.executeProposal(proposal, now); err != nil {
			return nil, err
		}
	} else {
		proposal.Status = types.ProposalStatusRejected
	}
	proposal.Processed = true
	s.header.LastProcessed = ptx.Proposal
	if err = s.setRecord(fmt.Sprintf(KeyProposal, proposal.Index), proposal); err != nil {
		return nil, err
	}
	event = &types.EventProcessed{
		Proposal:  proposal.Index,
		Kind:      proposal.Kind,
		Passed:    proposal.Status == types.ProposalStatusAccepted,
		Status:    proposal.Status,
		ActionLog: proposal.ActionLog,
	}
	s.emit(types.EventProcessedType, now, event)
	return
}

// executeProposal applies a passed proposal's effect by kind.
// Individual item failures are captured on the proposal and do not
// abort retirement.
func (s *State) executeProposal(proposal *types.Proposal, now uint64) error {
	switch proposal.Kind {
	case types.KindAction:
		for i := range proposal.Targets {
			if err := s.runner.Run(proposal.Targets[i], proposal.Values[i], proposal.Payloads[i]); err != nil {
				s.logger.Info("proposal action call failed", "proposal", proposal.Index, "item", i, "err", err)
				proposal.ActionLog = append(proposal.ActionLog, fmt.Sprintf("item %d: %v", i, err))
			}
		}
	case types.KindMembership:
		for i := range proposal.Targets {
			var bc types.BalanceChange
			if err := json.Unmarshal(proposal.Payloads[i], &bc); err != nil {
				proposal.ActionLog = append(proposal.ActionLog, fmt.Sprintf("item %d: %v", i, err))
				continue
			}
			if err := s.adjustBalances(proposal.Targets[i], bc.Loot, bc.Shares, now); err != nil {
				s.logger.Info("proposal balance change failed", "proposal", proposal.Index, "item", i, "err", err)
				proposal.ActionLog = append(proposal.ActionLog, fmt.Sprintf("item %d: %v", i, err))
			}
		}
	case types.KindPeriod:
		cfg := s.header.Config
		if proposal.Values[0] != 0 {
			cfg.MinVotingPeriod = proposal.Values[0]
		}
		if proposal.Values[1] != 0 {
			cfg.MaxVotingPeriod = proposal.Values[1]
		}
		if proposal.Values[2] != 0 {
			cfg.GracePeriod = proposal.Values[2]
		}
		cfg.SharesPaused = proposal.Values[3] != 0
		cfg.LootPaused = proposal.Values[4] != 0
		// an inverted window would block all future submissions
		if cfg.MinVotingPeriod > cfg.MaxVotingPeriod {
			s.logger.Info("proposal period change rejected", "proposal", proposal.Index, "min", cfg.MinVotingPeriod, "max", cfg.MaxVotingPeriod)
			proposal.ActionLog = append(proposal.ActionLog, fmt.Sprintf("min voting period %d exceeds max %d", cfg.MinVotingPeriod, cfg.MaxVotingPeriod))
			break
		}
		s.header.Config = cfg
	case types.KindAssetList:
		for i := range proposal.Targets {
			if proposal.Values[i] != 0 {
				s.addAsset(proposal.Targets[i])
			} else {
				s.removeAsset(proposal.Targets[i])
			}
		}
	}
	return nil
}

func (s *State) addAsset(asset common.Address) {
	if s.header.IsAsset(asset) {
		return
	}
	s.header.Assets = append(s.header.Assets, asset)
}

func (s *State) removeAsset(asset common.Address) {
	for i, a := range s.header.Assets {
		if a == asset {
			s.header.Assets = append(s.header.Assets[:i], s.header.Assets[i+1:]...)
			return
		}
	}
}
