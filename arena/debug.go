// Copyright (c) 2024 The castor-software gecode Authors
//
// MIT License

//go:build debug
// +build debug

package arena

const _DEBUG bool = true
