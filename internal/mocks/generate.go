package mocks

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Source --dir ../domain/rawdata --output domain/rawdata --outpkg rawdatamock --filename source_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Archive --dir ../domain/unified --output domain/unified --outpkg unifiedmock --filename archive_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Mirror --dir ../domain/unified --output domain/unified --outpkg unifiedmock --filename mirror_mock.go
