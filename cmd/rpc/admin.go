package rpc

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/govboard-network/govboard/gov"
	"github.com/govboard-network/govboard/lib"
	"github.com/govboard-network/govboard/wallet"
	"github.com/julienschmidt/httprouter"
	"github.com/nsf/jsondiff"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/net"
	"github.com/shirou/gopsutil/v3/process"
)

// Draft returns the form view of the module draft, creating an empty one when absent
func (s *Server) Draft(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	request := new(moduleRequest)
	if ok := s.unmarshal(w, r, request); !ok {
		return
	}
	draft, err := s.drafts.GetOrCreate(request.Module)
	if err != nil {
		writeErr(w, err)
		return
	}
	if ok := s.saveDrafts(w); !ok {
		return
	}
	s.writeDraft(w, draft)
}

// DraftEdit records raw input for one parameter and persists the draft
func (s *Server) DraftEdit(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	request := new(fieldRequest)
	if ok := s.unmarshal(w, r, request); !ok {
		return
	}
	if err := s.drafts.SetField(request.Module, request.Key, request.Value); err != nil {
		writeErr(w, err)
		return
	}
	draft, err := s.drafts.Get(request.Module)
	if err != nil {
		writeErr(w, err)
		return
	}
	if ok := s.saveDrafts(w); !ok {
		return
	}
	s.writeDraft(w, draft)
}

// DraftClear reverts one field, or discards the whole draft when no key is given
func (s *Server) DraftClear(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	request := new(clearRequest)
	if ok := s.unmarshal(w, r, request); !ok {
		return
	}
	if request.Key == "" {
		if err := s.drafts.Delete(request.Module); err != nil {
			writeErr(w, err)
			return
		}
		if ok := s.saveDrafts(w); !ok {
			return
		}
		write(w, paramsResponse{Module: request.Module}, http.StatusOK)
		return
	}
	if err := s.drafts.ClearField(request.Module, request.Key); err != nil {
		writeErr(w, err)
		return
	}
	draft, err := s.drafts.Get(request.Module)
	if err != nil {
		writeErr(w, err)
		return
	}
	if ok := s.saveDrafts(w); !ok {
		return
	}
	s.writeDraft(w, draft)
}

// DraftDiff renders how the draft's generated parameter set departs from the defaults
func (s *Server) DraftDiff(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	request := new(moduleRequest)
	if ok := s.unmarshal(w, r, request); !ok {
		return
	}
	set, err := gov.ParamSetFor(request.Module)
	if err != nil {
		writeErr(w, err)
		return
	}
	draft, err := s.drafts.Get(request.Module)
	if err != nil || draft.IsEmpty() {
		// nothing edited yet, the draft matches the defaults by definition
		write(w, diffResponse{Match: true}, http.StatusOK)
		return
	}
	message, fieldErrors, err := gov.BuildUpdateParams(draft)
	if err != nil {
		writeErr(w, err)
		return
	}
	if len(fieldErrors) != 0 {
		write(w, buildResponse{FieldErrors: fieldErrors}, http.StatusBadRequest)
		return
	}
	defaults, err := defaultParamsJSON(set)
	if err != nil {
		writeErr(w, err)
		return
	}
	options := jsondiff.DefaultConsoleOptions()
	difference, rendered := jsondiff.Compare(defaults, message.Value, &options)
	write(w, diffResponse{Match: difference == jsondiff.FullMatch, Diff: rendered}, http.StatusOK)
}

// Build assembles the MsgUpdateParams governance message from the module draft
func (s *Server) Build(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	request := new(moduleRequest)
	if ok := s.unmarshal(w, r, request); !ok {
		return
	}
	draft, err := s.drafts.Get(request.Module)
	if err != nil {
		writeErr(w, err)
		return
	}
	message, fieldErrors, err := gov.BuildUpdateParams(draft)
	if err != nil {
		writeErr(w, err)
		return
	}
	if len(fieldErrors) != 0 {
		write(w, buildResponse{FieldErrors: fieldErrors}, http.StatusBadRequest)
		return
	}
	write(w, buildResponse{Message: message}, http.StatusOK)
}

// TogglePrecompile flips one address in a precompile list parameter of the draft
func (s *Server) TogglePrecompile(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	request := new(togglePrecompileRequest)
	if ok := s.unmarshal(w, r, request); !ok {
		return
	}
	set, err := gov.ParamSetFor(request.Module)
	if err != nil {
		writeErr(w, err)
		return
	}
	descriptor, err := set.Get(request.Key)
	if err != nil {
		writeErr(w, err)
		return
	}
	draft, err := s.drafts.GetOrCreate(request.Module)
	if err != nil {
		writeErr(w, err)
		return
	}
	// start from the edited value when one exists, otherwise the default
	current := descriptor.Default
	if raw, edited := draft.Fields[request.Key]; edited {
		if current, err = gov.ValidateField(descriptor, raw); err != nil {
			writeErr(w, err)
			return
		}
	}
	addresses, ok := current.([]string)
	if !ok {
		writeErr(w, gov.ErrWrongValueShape(gov.KindStringList))
		return
	}
	addressSet, err := gov.NewPrecompileAddressSet(addresses)
	if err != nil {
		writeErr(w, err)
		return
	}
	enabled, err := addressSet.Toggle(request.Address)
	if err != nil {
		writeErr(w, err)
		return
	}
	// write the canonical list back into the draft as raw input
	elements := make([]gov.RawValue, 0, addressSet.Len())
	for _, address := range addressSet.List() {
		elements = append(elements, gov.RawString(address))
	}
	if err = s.drafts.SetField(request.Module, request.Key, gov.RawSequence(elements...)); err != nil {
		writeErr(w, err)
		return
	}
	if ok = s.saveDrafts(w); !ok {
		return
	}
	write(w, togglePrecompileResponse{Enabled: enabled, Addresses: addressSet.List()}, http.StatusOK)
}

// RegisterERC20 assembles a MsgRegisterERC20 governance message
func (s *Server) RegisterERC20(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	request := new(registerERC20Request)
	if ok := s.unmarshal(w, r, request); !ok {
		return
	}
	message, err := gov.BuildRegisterERC20(request.Addresses)
	if err != nil {
		writeErr(w, err)
		return
	}
	write(w, buildResponse{Message: message}, http.StatusOK)
}

// ToggleConversion assembles a MsgToggleConversion governance message
func (s *Server) ToggleConversion(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	request := new(toggleConversionRequest)
	if ok := s.unmarshal(w, r, request); !ok {
		return
	}
	message, err := gov.BuildToggleConversion(request.Token)
	if err != nil {
		writeErr(w, err)
		return
	}
	write(w, buildResponse{Message: message}, http.StatusOK)
}

// RegisterPreinstalls assembles a MsgRegisterPreinstalls governance message
func (s *Server) RegisterPreinstalls(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	request := new(registerPreinstallsRequest)
	if ok := s.unmarshal(w, r, request); !ok {
		return
	}
	message, err := gov.BuildRegisterPreinstalls(request.Preinstalls)
	if err != nil {
		writeErr(w, err)
		return
	}
	write(w, buildResponse{Message: message}, http.StatusOK)
}

// Submit builds the module draft, assembles the envelope and hands it to the broadcaster
func (s *Server) Submit(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	request := new(submitRequest)
	if ok := s.unmarshal(w, r, request); !ok {
		return
	}
	draft, err := s.drafts.Get(request.Module)
	if err != nil {
		writeErr(w, err)
		return
	}
	message, fieldErrors, err := gov.BuildUpdateParams(draft)
	if err != nil {
		writeErr(w, err)
		return
	}
	if len(fieldErrors) != 0 {
		write(w, buildResponse{FieldErrors: fieldErrors}, http.StatusBadRequest)
		return
	}
	tx, err := wallet.NewTransaction(s.chain, request.Signer, []*gov.GovernanceMessage{message}, request.Memo, request.Fee)
	if err != nil {
		writeErr(w, err)
		return
	}
	// record the pending envelope before broadcasting so a crash never loses it
	if err = s.txStore.Save(tx); err != nil {
		writeErr(w, err)
		return
	}
	broadcastErr := s.broadcaster.Broadcast(r.Context(), tx)
	if err = s.txStore.Save(tx); err != nil {
		writeErr(w, err)
		return
	}
	if broadcastErr != nil {
		writeErr(w, broadcastErr)
		return
	}
	// the draft is consumed by a successful submission
	if err = s.drafts.Delete(request.Module); err == nil {
		if ok := s.saveDrafts(w); !ok {
			return
		}
	}
	write(w, submitResponse{Hash: tx.Hash, Status: tx.Status}, http.StatusOK)
}

// AddressBook returns every named signer address
func (s *Server) AddressBook(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
	write(w, s.addressBook.List(), http.StatusOK)
}

// AddressBookAdd names a signer address
func (s *Server) AddressBookAdd(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	request := new(addressBookAddRequest)
	if ok := s.unmarshal(w, r, request); !ok {
		return
	}
	entry, err := s.addressBook.Add(request.Address, request.Nickname)
	if err != nil {
		writeErr(w, err)
		return
	}
	if ok := s.saveAddressBook(w); !ok {
		return
	}
	write(w, entry, http.StatusOK)
}

// AddressBookDelete removes a signer address
func (s *Server) AddressBookDelete(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	request := new(addressBookDeleteRequest)
	if ok := s.unmarshal(w, r, request); !ok {
		return
	}
	if err := s.addressBook.Delete(request.Address); err != nil {
		writeErr(w, err)
		return
	}
	if ok := s.saveAddressBook(w); !ok {
		return
	}
	write(w, s.addressBook.List(), http.StatusOK)
}

// Config returns the running backend configuration
func (s *Server) Config(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
	write(w, s.config, http.StatusOK)
}

// ResourceUsage retrieves backend resource usage
func (s *Server) ResourceUsage(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
	pm, err := mem.VirtualMemory() // os memory
	if err != nil {
		write(w, err, http.StatusInternalServerError)
		return
	}
	c, err := cpu.Times(false) // os cpu
	if err != nil {
		write(w, err, http.StatusInternalServerError)
		return
	}
	cp, err := cpu.Percent(0, false) // os cpu percent
	if err != nil {
		write(w, err, http.StatusInternalServerError)
		return
	}
	d, err := disk.Usage("/") // os disk
	if err != nil {
		write(w, err, http.StatusInternalServerError)
		return
	}
	p, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		write(w, err, http.StatusInternalServerError)
		return
	}
	name, err := p.Name()
	if err != nil {
		write(w, err, http.StatusInternalServerError)
		return
	}
	cpuPercent, err := p.CPUPercent()
	if err != nil {
		write(w, err, http.StatusInternalServerError)
		return
	}
	ioCounters, err := net.IOCounters(false)
	if err != nil {
		write(w, err, http.StatusInternalServerError)
		return
	}
	status, err := p.Status()
	if err != nil {
		write(w, err, http.StatusInternalServerError)
		return
	}
	fds, err := p.NumFDs()
	if err != nil {
		write(w, err, http.StatusInternalServerError)
		return
	}
	numThreads, err := p.NumThreads()
	if err != nil {
		write(w, err, http.StatusInternalServerError)
		return
	}
	memPercent, err := p.MemoryPercent()
	if err != nil {
		write(w, err, http.StatusInternalServerError)
		return
	}
	utc, err := p.CreateTime()
	if err != nil {
		write(w, err, http.StatusInternalServerError)
		return
	}
	write(w, resourceUsageResponse{
		Process: ProcessResourceUsage{
			Name:          name,
			Status:        strings.Join(status, ","),
			CreateTime:    time.Unix(utc/1000, 0).Format(time.RFC822),
			FDCount:       uint64(fds),
			ThreadCount:   uint64(numThreads),
			MemoryPercent: float64(memPercent),
			CPUPercent:    cpuPercent,
		},
		System: SystemResourceUsage{
			TotalRAM:        pm.Total,
			AvailableRAM:    pm.Available,
			UsedRAM:         pm.Used,
			UsedRAMPercent:  pm.UsedPercent,
			FreeRAM:         pm.Free,
			UsedCPUPercent:  cp[0],
			UserCPU:         c[0].User,
			SystemCPU:       c[0].System,
			IdleCPU:         c[0].Idle,
			TotalDisk:       d.Total,
			UsedDisk:        d.Used,
			UsedDiskPercent: d.UsedPercent,
			FreeDisk:        d.Free,
			ReceivedBytesIO: ioCounters[0].BytesRecv,
			WrittenBytesIO:  ioCounters[0].BytesSent,
		},
	}, http.StatusOK)
}

// writeDraft renders the full form view of a draft
func (s *Server) writeDraft(w http.ResponseWriter, draft *gov.ProposalDraft) {
	fields, err := draft.FieldStates()
	if err != nil {
		writeErr(w, err)
		return
	}
	write(w, paramsResponse{Module: draft.Module, Fields: fields}, http.StatusOK)
}

// defaultParamsJSON marshals the registry defaults of a module in canonical order
func defaultParamsJSON(set *gov.ModuleParamSet) ([]byte, lib.ErrorI) {
	params := make(gov.ParamValues, 0, len(set.Keys()))
	for _, key := range set.Keys() {
		descriptor, err := set.Get(key)
		if err != nil {
			return nil, err
		}
		params = append(params, gov.ParamValue{Key: key, Value: descriptor.Default})
	}
	return lib.MarshalJSON(&gov.MsgUpdateParams{Authority: gov.GovAuthority, Params: params})
}
