package errors

// DumpInfo is a flattened view of an error chain for structured logging.
type DumpInfo struct {
	Code       string
	TopMessage string
	Chain      []string
}

// Dump walks the unwrap chain and collects every message, outermost first.
func Dump(err error) DumpInfo {
	info := DumpInfo{}
	if err == nil {
		return info
	}

	info.TopMessage = err.Error()
	if typed := As(err); typed != nil {
		info.Code = string(typed.Code())
	}

	for cursor := err; cursor != nil; {
		info.Chain = append(info.Chain, cursor.Error())
		unwrapper, ok := cursor.(interface{ Unwrap() error })
		if !ok {
			break
		}
		cursor = unwrapper.Unwrap()
	}
	return info
}
