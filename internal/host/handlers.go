package host

import (
	"context"
	"path/filepath"

	"scribe/internal/errors"
	"scribe/internal/ipc"
	"scribe/internal/language"
	"scribe/internal/log"
	"scribe/pkg/types"
)

func (h *Host) handleOpenFileDialog(ctx context.Context, _ *ipc.Message) (interface{}, error) {
	return nil, h.ShowOpenDialog(ctx)
}

func (h *Host) handleSaveFile(_ context.Context, req *ipc.Message) (interface{}, error) {
	var in ipc.SaveFileRequest
	if err := req.Decode(&in); err != nil {
		return nil, err
	}
	return h.save(in.Path, in.Content, in.Encoding), nil
}

func (h *Host) handleSaveFileDialog(ctx context.Context, req *ipc.Message) (interface{}, error) {
	var in ipc.SaveFileDialogRequest
	if err := req.Decode(&in); err != nil {
		return nil, err
	}

	suggested := in.SuggestedName
	if suggested == "" {
		suggested = DefaultSaveName
	}
	path, err := h.opts.Dialogs.SaveFile(ctx, suggested)
	if err != nil {
		if errors.IsCanceled(err) {
			return types.SaveAsResult{Success: false, Canceled: true}, nil
		}
		return types.SaveAsResult{Success: false, Error: err.Error()}, nil
	}

	res := h.save(path, in.Content, in.Encoding)
	if !res.Success {
		return types.SaveAsResult{Success: false, Error: res.Error}, nil
	}
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	h.addRecent(path)
	h.track(path)
	return types.SaveAsResult{Success: true, FilePath: path}, nil
}

func (h *Host) save(path, content string, enc types.Encoding) types.SaveResult {
	if abs, err := filepath.Abs(path); err == nil && path != "" {
		h.suppressOwnWrite(abs)
	}
	return h.bridge.Write(path, content, enc)
}

func (h *Host) handleReloadFile(_ context.Context, req *ipc.Message) (interface{}, error) {
	var in ipc.PathRequest
	if err := req.Decode(&in); err != nil {
		return nil, err
	}
	return h.reload(in.Path), nil
}

func (h *Host) handleReloadFileDialog(ctx context.Context, _ *ipc.Message) (interface{}, error) {
	path, err := h.opts.Dialogs.OpenFile(ctx, language.Filters())
	if err != nil {
		if !errors.IsCanceled(err) {
			log.LogWithError(err).Warn("Open dialog failed")
		}
		return nil, nil
	}
	return h.reload(path), nil
}

// reload returns nil when the file cannot be read; a missing file is also
// pruned from the recent list.
func (h *Host) reload(path string) *types.FileRecord {
	rec, err := h.bridge.Read(path)
	if err != nil {
		if errors.IsFileNotFound(err) {
			h.prune(path)
		} else {
			log.LogWithError(err).Warn("Reload failed")
		}
		return nil
	}
	h.addRecent(rec.Path)
	h.track(rec.Path)
	return rec
}

func (h *Host) handleLoadFormatMappings(_ context.Context, _ *ipc.Message) (interface{}, error) {
	return h.opts.Mappings.All(), nil
}

func (h *Host) handleSaveFormatMappings(_ context.Context, req *ipc.Message) (interface{}, error) {
	var in map[string]string
	if err := req.Decode(&in); err != nil {
		return nil, err
	}
	if err := h.opts.Mappings.Replace(in); err != nil {
		return types.MutationResult{Success: false, Error: err.Error()}, nil
	}
	h.bridge.Resolver().SetMappings(h.opts.Mappings.All())
	return types.MutationResult{Success: true}, nil
}

func (h *Host) handleLoadPreferences(_ context.Context, _ *ipc.Message) (interface{}, error) {
	return h.opts.Preferences.All(), nil
}

func (h *Host) handleSavePreference(_ context.Context, req *ipc.Message) (interface{}, error) {
	var in ipc.SavePreferenceRequest
	if err := req.Decode(&in); err != nil {
		return nil, err
	}
	if in.Key == "" {
		return nil, errors.NewStoreError("empty preference key", "preferences.json", errors.StoreWriteFailed, nil)
	}
	if err := h.opts.Preferences.Set(in.Key, in.Value); err != nil {
		log.LogWithError(err).Warn("Cannot persist preference")
	}
	return nil, nil
}

func (h *Host) onAddRecentFile(_ context.Context, ev *ipc.Message) {
	var in ipc.PathRequest
	if err := ev.Decode(&in); err != nil || in.Path == "" {
		return
	}
	h.addRecent(in.Path)
}

func (h *Host) onConfirmClose(_ context.Context, _ *ipc.Message) {
	h.quit()
}

func (h *Host) onViewReady(ctx context.Context, _ *ipc.Message) {
	h.mu.Lock()
	h.ready = true
	launch := h.launch
	h.launch = ""
	h.mu.Unlock()

	if launch == "" {
		return
	}
	log.LogWithFields(log.F("path", launch)).Info("Opening launch file")
	if err := h.OpenPath(ctx, launch); err != nil {
		log.LogWithError(err).Warn("Cannot open launch file")
	}
}
