// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package registry

import (
	"github.com/pkg/errors"

	"github.com/vechain/mnreg/builtin/registry/linkedlist"
	"github.com/vechain/mnreg/builtin/solidity"
	"github.com/vechain/mnreg/mn"
)

var (
	slotMasternodes = nameToSlot("masternodes")
	slotOwners      = nameToSlot("owners")
	slotVotes       = nameToSlot("votes")
	// active set linked list
	slotActiveHead  = nameToSlot("active-head")
	slotActiveTail  = nameToSlot("active-tail")
	slotActiveCount = nameToSlot("active-size")
	// reward router
	slotCursor   = nameToSlot("reward-current")
	slotPayouts  = nameToSlot("reward-payouts")
	slotEligible = nameToSlot("reward-eligible")
)

func nameToSlot(name string) mn.Bytes32 {
	return mn.BytesToBytes32([]byte(name))
}

// storage represents the root storage for the registry contract.
type storage struct {
	masternodes *solidity.Mapping[mn.Address, *Masternode]
	owners      *solidity.Mapping[mn.Address, mn.Address] // owner => node
	votes       *solidity.Mapping[mn.Address, *voteSet]   // subject => voters
	active      *linkedlist.LinkedList

	cursor   *solidity.Address
	payouts  *solidity.Uint256
	eligible *solidity.Uint256
}

func newStorage(sctx *solidity.Context) *storage {
	return &storage{
		masternodes: solidity.NewMapping[mn.Address, *Masternode](sctx, slotMasternodes),
		owners:      solidity.NewMapping[mn.Address, mn.Address](sctx, slotOwners),
		votes:       solidity.NewMapping[mn.Address, *voteSet](sctx, slotVotes),
		active:      linkedlist.NewLinkedList(sctx, slotActiveHead, slotActiveTail, slotActiveCount),
		cursor:      solidity.NewAddress(sctx, slotCursor),
		payouts:     solidity.NewUint256(sctx, slotPayouts),
		eligible:    solidity.NewUint256(sctx, slotEligible),
	}
}

func (s *storage) getMasternode(node mn.Address) (*Masternode, error) {
	m, err := s.masternodes.Get(node)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get masternode")
	}
	return m, nil
}

func (s *storage) setMasternode(node mn.Address, entry *Masternode) error {
	if err := s.masternodes.Set(node, entry); err != nil {
		return errors.Wrap(err, "failed to set masternode")
	}
	return nil
}

func (s *storage) getOwnedNode(owner mn.Address) (mn.Address, error) {
	node, err := s.owners.Get(owner)
	if err != nil {
		return mn.Address{}, errors.Wrap(err, "failed to get owner")
	}
	return node, nil
}

func (s *storage) getVotes(node mn.Address) (*voteSet, error) {
	v, err := s.votes.Get(node)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get votes")
	}
	return v, nil
}

func (s *storage) addVote(subject, voter mn.Address) error {
	votes, err := s.getVotes(subject)
	if err != nil {
		return err
	}
	if votes.has(voter) {
		return nil
	}
	votes.Voters = append(votes.Voters, voter)
	if err := s.votes.Set(subject, votes); err != nil {
		return errors.Wrap(err, "failed to set votes")
	}
	return nil
}

// purge drops every trace of a node that left the active set.
func (s *storage) purge(node mn.Address, owner mn.Address) {
	s.masternodes.Delete(node)
	s.votes.Delete(node)
	s.owners.Delete(owner)
}
