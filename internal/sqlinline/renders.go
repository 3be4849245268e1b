package sqlinline

const QRenderInsert = `--sql 226039c8-d9f0-4673-8d47-035c599585ce
insert into renders (id, parent_id, status, mode, vehicle, request_json)
values ($1, $2, 'QUEUED', $3, $4, $5)
returning created_at, updated_at;
`

const QRenderGetByID = `--sql fb82a421-ccee-4ce0-95b8-6915f929c7b6
select id, parent_id, status, mode, vehicle, request_json, prompt, error, created_at, updated_at
from renders
where id = $1;
`

const QRenderClaimNext = `--sql dddb977e-a049-4004-98bc-303893cccfb7
with next_render as (
    select id
    from renders
    where status = 'QUEUED'
    order by created_at asc
    for update skip locked
    limit 1
),
updated as (
    update renders
    set status = 'RUNNING', updated_at = now()
    where id in (select id from next_render)
    returning id, parent_id, status, mode, vehicle, request_json, prompt, error, created_at, updated_at
)
select * from updated;
`

const QRenderUpdateStatus = `--sql 45c17028-0360-47d5-a004-494714850336
update renders
set status = $2,
    prompt = case when $3 = '' then prompt else $3 end,
    error = $4,
    updated_at = now()
where id = $1;
`

const QRenderAssetInsert = `--sql da61181a-3b9e-46b3-a793-a236d473c2d3
insert into render_assets (id, render_id, label, storage_key, url, mime, width, height, bytes, prompt)
values ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
on conflict (render_id, label) do update set
    storage_key = excluded.storage_key,
    url = excluded.url,
    mime = excluded.mime,
    width = excluded.width,
    height = excluded.height,
    bytes = excluded.bytes,
    prompt = excluded.prompt;
`

const QRenderAssetsList = `--sql 4448dd37-05fa-4165-a195-d6645c97a601
select id, render_id, label, storage_key, url, mime, width, height, bytes, prompt, created_at
from render_assets
where render_id = $1
order by created_at asc, label asc;
`
